package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/middlewares"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/policy"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

type PesananController struct {
	DB *gorm.DB
}

func NewPesananController(db *gorm.DB) *PesananController {
	return &PesananController{DB: db}
}

// CreatePesanan opens an order against a kantin. The caller must be the
// declared mahasiswa; the target kantin must exist.
func (pc *PesananController) CreatePesanan(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		IDKantin    uint   `json:"id_kantin" binding:"required"`
		IDMahasiswa uint   `json:"id_mahasiswa" binding:"required"`
		Status      string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := policy.CanCreatePesanan(p, req.IDMahasiswa); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var kantin models.Kantin
	if err := pc.DB.First(&kantin, req.IDKantin).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "kantin"))
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusProses
	}
	if !models.ValidStatus(status) {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "invalid status %q", status))
		return
	}

	pesanan := models.Pesanan{
		IDKantin:    req.IDKantin,
		IDMahasiswa: req.IDMahasiswa,
		Status:      status,
	}
	if err := pc.DB.Create(&pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Pesanan %d created: mahasiswa=%d kantin=%d", pesanan.ID, pesanan.IDMahasiswa, pesanan.IDKantin)
	utils.RespondJSON(c, http.StatusCreated, "Pesanan created", pesanan)
}

// GetAllPesanan lists only the caller's orders: a mahasiswa sees what it
// placed, a kantin sees what it received. Filtering, not per-row rejection.
func (pc *PesananController) GetAllPesanan(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	offset, limit := pagination(c)

	var pesanan []models.Pesanan
	if err := policy.ScopePesanan(pc.DB, p).Offset(offset).Limit(limit).Find(&pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pesanan", pesanan)
}

func (pc *PesananController) GetPesananByID(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := pc.loadPesanan(c, false)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanViewPesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan detail", pesanan)
}

func (pc *PesananController) GetPesananWithDetails(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := pc.loadPesanan(c, true)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanViewPesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan with details", pesanan)
}

func (pc *PesananController) GetPesananByStatus(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	status := c.Param("status")
	if !models.ValidStatus(status) {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "invalid status %q", status))
		return
	}

	var pesanan []models.Pesanan
	if err := policy.ScopePesanan(pc.DB, p).Where("status = ?", status).Find(&pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pesanan", pesanan)
}

// GetPesananByMahasiswa lists the orders a given mahasiswa placed. The path
// id must be the caller itself.
func (pc *PesananController) GetPesananByMahasiswa(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	id, err := parseIDParam(c, "mahasiswa_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanListPesananByMahasiswa(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	offset, limit := pagination(c)

	var pesanan []models.Pesanan
	if err := pc.DB.Where("id_mahasiswa = ?", id).Offset(offset).Limit(limit).Find(&pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pesanan", pesanan)
}

// GetPesananByKantin lists the orders a given kantin received. The path id
// must be the caller itself.
func (pc *PesananController) GetPesananByKantin(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	id, err := parseIDParam(c, "kantin_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanListPesananByKantin(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	offset, limit := pagination(c)

	var pesanan []models.Pesanan
	if err := pc.DB.Where("id_kantin = ?", id).Offset(offset).Limit(limit).Find(&pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pesanan", pesanan)
}

// UpdatePesananStatus flips the order status. Only the kantin that the order
// targets may do this; mahasiswa and other kantin get Forbidden.
func (pc *PesananController) UpdatePesananStatus(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := pc.loadPesanan(c, false)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanUpdatePesananStatus(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "invalid status %q", req.Status))
		return
	}

	pesanan.Status = req.Status
	if err := pc.DB.Save(pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pesanan updated", pesanan)
}

func (pc *PesananController) DeletePesanan(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	pesanan, err := pc.loadPesanan(c, false)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := policy.CanDeletePesanan(p, pesanan); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := pc.DB.Delete(pesanan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (pc *PesananController) loadPesanan(c *gin.Context, withDetails bool) (*models.Pesanan, error) {
	id, err := parseIDParam(c, "pesanan_id")
	if err != nil {
		return nil, err
	}

	query := pc.DB
	if withDetails {
		query = query.Preload("DetailPesanan").Preload("Mahasiswa").Preload("Kantin")
	}

	var pesanan models.Pesanan
	if err := query.First(&pesanan, id).Error; err != nil {
		return nil, firstOrNotFound(err, "pesanan")
	}
	return &pesanan, nil
}
