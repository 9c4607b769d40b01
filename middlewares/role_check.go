package middlewares

import (
	"net/http"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the admin group.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidOrInactive)
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, utils.ErrNoPermission)
			c.Abort()
			return
		}

		c.Next()
	}
}
