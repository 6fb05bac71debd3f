// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/falconprime/backend/internal/i18n"
	"github.com/falconprime/backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is set by the router from config at startup.
var SessionCookieName = "falcon_admin_session"

// sessionToken extracts the admin session token from the session cookie,
// falling back to an Authorization: Bearer header for API clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AdminRequired guards the admin panel routes. Everything else on the
// storefront is public, checkout included.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Next()
	}
}
