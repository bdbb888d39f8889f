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

type KantinController struct {
	DB *gorm.DB
}

func NewKantinController(db *gorm.DB) *KantinController {
	return &KantinController{DB: db}
}

// Register creates a kantin account. Owner details and operating hours come
// later through the profile update.
func (kc *KantinController) Register(c *gin.Context) {
	var req struct {
		NamaKantin string `json:"nama_kantin" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Kantin
	if err := kc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ErrDuplicateEmail)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kantin := models.Kantin{
		NamaKantin: req.NamaKantin,
		Email:      req.Email,
		Password:   hashed,
	}
	if err := kc.DB.Create(&kantin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New kantin registered: %s", kantin.Email)
	utils.RespondJSON(c, http.StatusCreated, "Kantin registered", kantin)
}

func (kc *KantinController) GetAllKantin(c *gin.Context) {
	offset, limit := pagination(c)

	var kantin []models.Kantin
	if err := kc.DB.Offset(offset).Limit(limit).Find(&kantin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of kantin", kantin)
}

func (kc *KantinController) GetKantinByID(c *gin.Context) {
	id, err := parseIDParam(c, "kantin_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var kantin models.Kantin
	if err := kc.DB.First(&kantin, id).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "kantin"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kantin detail", kantin)
}

func (kc *KantinController) GetKantinWithMenus(c *gin.Context) {
	id, err := parseIDParam(c, "kantin_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var kantin models.Kantin
	if err := kc.DB.Preload("Menu").First(&kantin, id).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "kantin"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kantin with menus", kantin)
}

func (kc *KantinController) GetKantinByEmail(c *gin.Context) {
	var kantin models.Kantin
	if err := kc.DB.Where("email = ?", c.Param("email")).First(&kantin).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "kantin"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kantin detail", kantin)
}

// UpdateKantin applies a partial update to the caller's own account,
// including the profile fields that gate order fulfilment.
func (kc *KantinController) UpdateKantin(c *gin.Context) {
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
	if err := policy.CanManageKantin(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		NamaKantin     *string `json:"nama_kantin"`
		Email          *string `json:"email" binding:"omitempty,email"`
		Password       *string `json:"password" binding:"omitempty,min=6"`
		NamaPemilik    *string `json:"nama_pemilik"`
		NoHPPemilik    *string `json:"no_hp_pemilik"`
		JamOperasional *string `json:"jam_operasional"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	kantin := p.Kantin
	if req.Email != nil && *req.Email != kantin.Email {
		var existing models.Kantin
		if err := kc.DB.Where("email = ? AND id <> ?", *req.Email, id).First(&existing).Error; err == nil {
			utils.RespondAppError(c, utils.ErrDuplicateEmail)
			return
		}
		kantin.Email = *req.Email
	}
	if req.NamaKantin != nil {
		kantin.NamaKantin = *req.NamaKantin
	}
	if req.NamaPemilik != nil {
		kantin.NamaPemilik = req.NamaPemilik
	}
	if req.NoHPPemilik != nil {
		kantin.NoHPPemilik = req.NoHPPemilik
	}
	if req.JamOperasional != nil {
		kantin.JamOperasional = req.JamOperasional
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		kantin.Password = hashed
	}

	if err := kc.DB.Save(kantin).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kantin updated", kantin)
}

func (kc *KantinController) DeleteKantin(c *gin.Context) {
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
	if err := policy.CanManageKantin(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := kc.DB.Delete(&models.Kantin{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
