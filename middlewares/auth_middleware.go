package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and re-checks the account
// on every request. A deactivated account is rejected immediately,
// mid-session, with the same generic message login uses.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token inválido"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil || claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token inválido o expirado"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidOrInactive)
			c.Abort()
			return
		}
		if !user.Active {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidOrInactive)
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("email", user.Email)
		c.Set("name", user.DisplayName())

		c.Next()
	}
}

// WebSocketAuthMiddleware authenticates socket upgrades, where the
// token arrives as a query parameter.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil || !user.Active {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("email", user.Email)
		c.Set("name", user.DisplayName())

		c.Next()
	}
}
