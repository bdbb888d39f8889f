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

type MenuController struct {
	DB     *gorm.DB
	Images services.ImageStorage
}

func NewMenuController(db *gorm.DB, images services.ImageStorage) *MenuController {
	return &MenuController{DB: db, Images: images}
}

func (mc *MenuController) GetAllMenu(c *gin.Context) {
	offset, limit := pagination(c)

	var menu []models.Menu
	if err := mc.DB.Offset(offset).Limit(limit).Find(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menu)
}

func (mc *MenuController) GetMenuByKantin(c *gin.Context) {
	kantinID, err := parseIDParam(c, "kantin_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var kantin models.Kantin
	if err := mc.DB.First(&kantin, kantinID).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "kantin"))
		return
	}

	var menu []models.Menu
	if err := mc.DB.Where("id_kantin = ?", kantinID).Find(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menu)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "menu"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) GetMenuWithKantin(c *gin.Context) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var menu models.Menu
	if err := mc.DB.Preload("Kantin").First(&menu, id).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "menu"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) SearchMenu(c *gin.Context) {
	var menu []models.Menu
	if err := mc.DB.Where("nama_menu LIKE ?", "%"+c.Param("query")+"%").Find(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Search results", menu)
}

// CreateMenu adds a menu record for the calling kantin.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		NamaMenu string          `json:"nama_menu" binding:"required"`
		Harga    decimal.Decimal `json:"harga" binding:"required"`
		ImgMenu  *string         `json:"img_menu"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Harga.IsNegative() {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "harga must not be negative"))
		return
	}

	menu := models.Menu{
		IDKantin: p.Kantin.ID,
		NamaMenu: req.NamaMenu,
		Harga:    req.Harga.Round(2),
		ImgMenu:  req.ImgMenu,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// CreateMenuWithImage takes a multipart form with an optional image. The
// image is stored before the row is written, so a storage failure leaves no
// menu record behind.
func (mc *MenuController) CreateMenuWithImage(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	namaMenu := c.PostForm("nama_menu")
	if namaMenu == "" {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "nama_menu is required"))
		return
	}
	harga, err := decimal.NewFromString(c.PostForm("harga"))
	if err != nil || harga.IsNegative() {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "invalid harga"))
		return
	}

	var imgURL *string
	if file, err := c.FormFile("image"); err == nil {
		url, uploadErr := mc.Images.Upload(c.Request.Context(), file)
		if uploadErr != nil {
			utils.RespondAppError(c, uploadErr)
			return
		}
		imgURL = &url
	}

	menu := models.Menu{
		IDKantin: p.Kantin.ID,
		NamaMenu: namaMenu,
		Harga:    harga.Round(2),
		ImgMenu:  imgURL,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu applies a partial update to name and price. The image never
// changes through this endpoint; it is replaced via UpdateMenuImage and
// cleared via DeleteMenuImage so the two intents stay distinct.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	menu, err := mc.ownedMenu(c, p)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		NamaMenu *string          `json:"nama_menu"`
		Harga    *decimal.Decimal `json:"harga"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.NamaMenu != nil {
		menu.NamaMenu = *req.NamaMenu
	}
	if req.Harga != nil {
		if req.Harga.IsNegative() {
			utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "harga must not be negative"))
			return
		}
		menu.Harga = req.Harga.Round(2)
	}

	if err := mc.DB.Save(menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// UpdateMenuImage replaces the stored image. The new object is uploaded and
// committed before the old one is removed, so a failure at any point never
// leaves the row pointing at a missing object.
func (mc *MenuController) UpdateMenuImage(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	menu, err := mc.ownedMenu(c, p)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "image file is required"))
		return
	}

	url, err := mc.Images.Upload(c.Request.Context(), file)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	oldURL := menu.ImgMenu
	menu.ImgMenu = &url
	if err := mc.DB.Save(menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if oldURL != nil {
		if err := mc.Images.Delete(c.Request.Context(), *oldURL); err != nil {
			utils.ErrorLogger.Printf("failed to delete replaced menu image %s: %v", *oldURL, err)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu image updated", menu)
}

// DeleteMenuImage clears the image, the explicit counterpart to "absent
// means unchanged" in UpdateMenu.
func (mc *MenuController) DeleteMenuImage(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	menu, err := mc.ownedMenu(c, p)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if menu.ImgMenu == nil {
		utils.RespondAppError(c, utils.NewAppError(utils.KindNotFound, "menu has no image"))
		return
	}

	if err := mc.Images.Delete(c.Request.Context(), *menu.ImgMenu); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	menu.ImgMenu = nil
	if err := mc.DB.Save(menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu image removed", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	menu, err := mc.ownedMenu(c, p)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	// The row goes first; a dangling object in the bucket is recoverable,
	// a row pointing at a deleted object is not.
	if err := mc.DB.Delete(menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if menu.ImgMenu != nil {
		if err := mc.Images.Delete(c.Request.Context(), *menu.ImgMenu); err != nil {
			utils.ErrorLogger.Printf("failed to delete image for removed menu %d: %v", menu.ID, err)
		}
	}
	c.Status(http.StatusNoContent)
}

// ownedMenu loads the menu from the path parameter and checks the caller
// owns it. Missing menu wins over forbidden, matching fetch-by-id semantics.
func (mc *MenuController) ownedMenu(c *gin.Context, p models.Principal) (*models.Menu, error) {
	id, err := parseIDParam(c, "menu_id")
	if err != nil {
		return nil, err
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		return nil, firstOrNotFound(err, "menu")
	}
	if err := policy.CanManageMenu(p, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}
