package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/middlewares"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/policy"
	"github.com/kudakan/kudakan-api/services"
	"github.com/kudakan/kudakan-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DetailPesananController struct {
	DB *gorm.DB
}

func NewDetailPesananController(db *gorm.DB) *DetailPesananController {
	return &DetailPesananController{DB: db}
}

// CreateDetail adds a line item with a client-supplied total. The total must
// equal the current menu price times quantity exactly.
func (dc *DetailPesananController) CreateDetail(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		IDPesanan  uint            `json:"id_pesanan" binding:"required"`
		IDMenu     uint            `json:"id_menu" binding:"required"`
		Jumlah     int             `json:"jumlah" binding:"required,gt=0"`
		HargaTotal decimal.Decimal `json:"harga_total" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pesanan, menu, err := dc.resolveParents(p, req.IDPesanan, req.IDMenu)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := services.ValidateLineTotal(menu.Harga, req.Jumlah, req.HargaTotal); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	detail := models.DetailPesanan{
		IDPesanan:  pesanan.ID,
		IDMenu:     menu.ID,
		Jumlah:     req.Jumlah,
		HargaTotal: req.HargaTotal.Round(2),
	}
	if err := dc.DB.Create(&detail).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Detail pesanan created", detail)
}

// CreateDetailAutoCalculate adds a line item with the total computed from
// the current menu price, no client arithmetic involved.
func (dc *DetailPesananController) CreateDetailAutoCalculate(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		IDPesanan uint `json:"id_pesanan" binding:"required"`
		IDMenu    uint `json:"id_menu" binding:"required"`
		Jumlah    int  `json:"jumlah" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pesanan, menu, err := dc.resolveParents(p, req.IDPesanan, req.IDMenu)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	detail := models.DetailPesanan{
		IDPesanan:  pesanan.ID,
		IDMenu:     menu.ID,
		Jumlah:     req.Jumlah,
		HargaTotal: services.ComputeLineTotal(menu.Harga, req.Jumlah),
	}
	if err := dc.DB.Create(&detail).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Detail pesanan created", detail)
}

func (dc *DetailPesananController) GetDetailByID(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	detail, pesanan, err := dc.loadDetail(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanViewPesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail pesanan", detail)
}

// GetDetailsByPesanan lists a single order's line items, visible to the two
// parties of that order.
func (dc *DetailPesananController) GetDetailsByPesanan(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := dc.loadParent(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanViewPesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var details []models.DetailPesanan
	if err := dc.DB.Where("id_pesanan = ?", pesanan.ID).Find(&details).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of detail pesanan", details)
}

// GetPesananTotal aggregates an order's line items into total amount, total
// item quantity, and line count.
func (dc *DetailPesananController) GetPesananTotal(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := dc.loadParent(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanViewPesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var details []models.DetailPesanan
	if err := dc.DB.Where("id_pesanan = ?", pesanan.ID).Find(&details).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan total", services.AggregatePesananTotal(pesanan.ID, details))
}

// UpdateDetail is a partial update. A quantity change without an explicit
// total recomputes the total from the current menu price; a supplied total
// is validated against price times quantity instead.
func (dc *DetailPesananController) UpdateDetail(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	detail, pesanan, err := dc.loadDetail(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanModifyDetail(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		Jumlah     *int             `json:"jumlah" binding:"omitempty,gt=0"`
		HargaTotal *decimal.Decimal `json:"harga_total"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.Menu
	if err := dc.DB.First(&menu, detail.IDMenu).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "menu"))
		return
	}

	if req.Jumlah != nil {
		detail.Jumlah = *req.Jumlah
	}

	switch {
	case req.Jumlah != nil && req.HargaTotal == nil:
		detail.HargaTotal = services.RecomputeLineTotal(menu.Harga, detail.Jumlah)
	case req.HargaTotal != nil:
		if err := services.ValidateLineTotal(menu.Harga, detail.Jumlah, *req.HargaTotal); err != nil {
			utils.RespondAppError(c, err)
			return
		}
		detail.HargaTotal = req.HargaTotal.Round(2)
	}

	if err := dc.DB.Save(detail).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detail pesanan updated", detail)
}

func (dc *DetailPesananController) DeleteDetail(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	detail, pesanan, err := dc.loadDetail(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanModifyDetail(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := dc.DB.Delete(detail).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveParents loads the pesanan and menu referenced by a create request
// and checks the caller may add items to that pesanan.
func (dc *DetailPesananController) resolveParents(p models.Principal, idPesanan, idMenu uint) (*models.Pesanan, *models.Menu, error) {
	var pesanan models.Pesanan
	if err := dc.DB.First(&pesanan, idPesanan).Error; err != nil {
		return nil, nil, firstOrNotFound(err, "pesanan")
	}
	if err := policy.CanModifyDetail(p, &pesanan); err != nil {
		return nil, nil, err
	}

	var menu models.Menu
	if err := dc.DB.First(&menu, idMenu).Error; err != nil {
		return nil, nil, firstOrNotFound(err, "menu")
	}
	return &pesanan, &menu, nil
}

func (dc *DetailPesananController) loadDetail(c *gin.Context) (*models.DetailPesanan, *models.Pesanan, error) {
	id, err := parseIDParam(c, "detail_id")
	if err != nil {
		return nil, nil, err
	}

	var detail models.DetailPesanan
	if err := dc.DB.First(&detail, id).Error; err != nil {
		return nil, nil, firstOrNotFound(err, "detail pesanan")
	}

	var pesanan models.Pesanan
	if err := dc.DB.First(&pesanan, detail.IDPesanan).Error; err != nil {
		return nil, nil, firstOrNotFound(err, "pesanan")
	}
	return &detail, &pesanan, nil
}

func (dc *DetailPesananController) loadParent(c *gin.Context) (*models.Pesanan, error) {
	id, err := parseIDParam(c, "pesanan_id")
	if err != nil {
		return nil, err
	}

	var pesanan models.Pesanan
	if err := dc.DB.First(&pesanan, id).Error; err != nil {
		return nil, firstOrNotFound(err, "pesanan")
	}
	return &pesanan, nil
}
