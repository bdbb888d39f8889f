package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/middlewares"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

type AuthController struct {
	DB         *gorm.DB
	TokenMaker *utils.TokenMaker
}

func NewAuthController(db *gorm.DB, tm *utils.TokenMaker) *AuthController {
	return &AuthController{DB: db, TokenMaker: tm}
}

// Login authenticates either principal kind by email. Mahasiswa is tried
// first, then kantin, mirroring the single shared login endpoint.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mahasiswa models.Mahasiswa
	if err := ac.DB.Where("email = ?", input.Email).First(&mahasiswa).Error; err == nil {
		if utils.CheckPassword(input.Password, mahasiswa.Password) {
			ac.respondWithToken(c, mahasiswa.ID, models.RoleMahasiswa, gin.H{
				"id":    mahasiswa.ID,
				"nama":  mahasiswa.Nama,
				"email": mahasiswa.Email,
				"nim":   mahasiswa.NIM,
			})
			return
		}
	}

	var kantin models.Kantin
	if err := ac.DB.Where("email = ?", input.Email).First(&kantin).Error; err == nil {
		if utils.CheckPassword(input.Password, kantin.Password) {
			ac.respondWithToken(c, kantin.ID, models.RoleKantin, gin.H{
				"id":          kantin.ID,
				"nama_kantin": kantin.NamaKantin,
				"email":       kantin.Email,
			})
			return
		}
	}

	utils.RespondAppError(c, utils.ErrInvalidCredential)
}

func (ac *AuthController) respondWithToken(c *gin.Context, userID uint, role string, userInfo gin.H) {
	token, err := ac.TokenMaker.Generate(userID, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful: %s id=%d", role, userID)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_type":    role,
		"user_info":    userInfo,
	})
}

// Me returns the authenticated principal's own record.
func (ac *AuthController) Me(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if p.Role == models.RoleMahasiswa {
		utils.RespondJSON(c, http.StatusOK, "Current user", gin.H{
			"user_type": p.Role,
			"user_info": p.Mahasiswa,
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current user", gin.H{
		"user_type": p.Role,
		"user_info": p.Kantin,
	})
}

// ChangePassword verifies the current password before rotating the hash.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	p, err := middlewares.CurrentPrincipal(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var storedHash string
	if p.Role == models.RoleMahasiswa {
		storedHash = p.Mahasiswa.Password
	} else {
		storedHash = p.Kantin.Password
	}

	if !utils.CheckPassword(input.CurrentPassword, storedHash) {
		utils.RespondAppError(c, utils.NewAppError(utils.KindValidation, "current password is incorrect"))
		return
	}

	newHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var updateErr error
	if p.Role == models.RoleMahasiswa {
		updateErr = ac.DB.Model(p.Mahasiswa).Update("password", newHash).Error
	} else {
		updateErr = ac.DB.Model(p.Kantin).Update("password", newHash).Error
	}
	if updateErr != nil {
		utils.RespondError(c, http.StatusInternalServerError, updateErr)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password updated successfully", nil)
}
