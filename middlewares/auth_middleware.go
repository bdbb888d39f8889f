package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

const principalKey = "principal"

// Authenticate resolves the bearer token into a concrete Mahasiswa or Kantin
// row. A token whose principal was deleted after issuance is rejected the
// same way as a bad token.
func Authenticate(db *gorm.DB, tm *utils.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondAppError(c, utils.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := tm.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}

		principal := models.Principal{Role: claims.Role}
		switch claims.Role {
		case models.RoleMahasiswa:
			var m models.Mahasiswa
			if err := db.First(&m, claims.UserID).Error; err != nil {
				utils.RespondAppError(c, utils.ErrInvalidToken)
				c.Abort()
				return
			}
			principal.Mahasiswa = &m
		case models.RoleKantin:
			var k models.Kantin
			if err := db.First(&k, claims.UserID).Error; err != nil {
				utils.RespondAppError(c, utils.ErrInvalidToken)
				c.Abort()
				return
			}
			principal.Kantin = &k
		default:
			utils.RespondAppError(c, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal fetches the principal stored by Authenticate.
func CurrentPrincipal(c *gin.Context) (models.Principal, error) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, utils.ErrUnauthenticated
	}
	p, ok := v.(models.Principal)
	if !ok {
		return models.Principal{}, errors.New("invalid principal type in context")
	}
	return p, nil
}
