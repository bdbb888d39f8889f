package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/utils"
)

// The checks below compose in a fixed order on protected routes:
// Authenticate, then a role check, then RequireCompleteProfile. Each aborts
// on failure so the later checks never run on an unresolved principal.

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c)
		if err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}
		if p.Role != role {
			utils.RespondAppError(c, utils.NewAppError(utils.KindForbidden,
				"access forbidden: %s only", role))
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireMahasiswa() gin.HandlerFunc {
	return requireRole(models.RoleMahasiswa)
}

func RequireKantin() gin.HandlerFunc {
	return requireRole(models.RoleKantin)
}

// RequireCompleteProfile rejects principals that have not filled in their
// profile yet. This is a 400-class failure, distinct from Forbidden.
func RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c)
		if err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}
		if !p.ProfileComplete() {
			utils.RespondAppError(c, utils.NewAppError(utils.KindProfileIncomplete,
				"profile not complete, please complete your profile first with %s", p.ProfileRequirement()))
			c.Abort()
			return
		}
		c.Next()
	}
}
