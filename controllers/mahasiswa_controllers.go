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

type MahasiswaController struct {
	DB *gorm.DB
}

func NewMahasiswaController(db *gorm.DB) *MahasiswaController {
	return &MahasiswaController{DB: db}
}

// Register creates a mahasiswa account. Public endpoint; profile fields stay
// empty until the profile update fills them in.
func (mc *MahasiswaController) Register(c *gin.Context) {
	var req struct {
		Nama     string `json:"nama" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		NIM      string `json:"nim" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Mahasiswa
	if err := mc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ErrDuplicateEmail)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mahasiswa := models.Mahasiswa{
		Nama:     req.Nama,
		Email:    req.Email,
		Password: hashed,
		NIM:      req.NIM,
	}
	if err := mc.DB.Create(&mahasiswa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New mahasiswa registered: %s", mahasiswa.Email)
	utils.RespondJSON(c, http.StatusCreated, "Mahasiswa registered", mahasiswa)
}

func (mc *MahasiswaController) GetAllMahasiswa(c *gin.Context) {
	offset, limit := pagination(c)

	var mahasiswa []models.Mahasiswa
	if err := mc.DB.Offset(offset).Limit(limit).Find(&mahasiswa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of mahasiswa", mahasiswa)
}

func (mc *MahasiswaController) GetMahasiswaByID(c *gin.Context) {
	id, err := parseIDParam(c, "mahasiswa_id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var mahasiswa models.Mahasiswa
	if err := mc.DB.First(&mahasiswa, id).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "mahasiswa"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mahasiswa detail", mahasiswa)
}

func (mc *MahasiswaController) GetMahasiswaByEmail(c *gin.Context) {
	var mahasiswa models.Mahasiswa
	if err := mc.DB.Where("email = ?", c.Param("email")).First(&mahasiswa).Error; err != nil {
		utils.RespondAppError(c, firstOrNotFound(err, "mahasiswa"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mahasiswa detail", mahasiswa)
}

// UpdateMahasiswa applies a partial update to the caller's own account.
// Absent fields are left unchanged.
func (mc *MahasiswaController) UpdateMahasiswa(c *gin.Context) {
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
	if err := policy.CanManageMahasiswa(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var req struct {
		Nama     *string `json:"nama"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=6"`
		NIM      *string `json:"nim"`
		Alamat   *string `json:"alamat"`
		NoHP     *string `json:"no_hp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	mahasiswa := p.Mahasiswa
	if req.Email != nil && *req.Email != mahasiswa.Email {
		var existing models.Mahasiswa
		if err := mc.DB.Where("email = ? AND id <> ?", *req.Email, id).First(&existing).Error; err == nil {
			utils.RespondAppError(c, utils.ErrDuplicateEmail)
			return
		}
		mahasiswa.Email = *req.Email
	}
	if req.Nama != nil {
		mahasiswa.Nama = *req.Nama
	}
	if req.NIM != nil {
		mahasiswa.NIM = *req.NIM
	}
	if req.Alamat != nil {
		mahasiswa.Alamat = req.Alamat
	}
	if req.NoHP != nil {
		mahasiswa.NoHP = req.NoHP
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		mahasiswa.Password = hashed
	}

	if err := mc.DB.Save(mahasiswa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mahasiswa updated", mahasiswa)
}

func (mc *MahasiswaController) DeleteMahasiswa(c *gin.Context) {
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
	if err := policy.CanManageMahasiswa(p, id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := mc.DB.Delete(&models.Mahasiswa{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
