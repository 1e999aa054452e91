package middleware

import (
	"net/http"

	"homehelper/models"
	"homehelper/services/gate"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group by role. It reads the identity placed on
// the context by JWTAuthMiddleware, runs the access decision, and answers
// redirects the way the web client expects: 401 with a login redirect for
// missing sessions, 403 with the role's own home for wrong-role sessions.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := gate.View{}
		if userID := c.GetString(ContextUserIDKey); userID != "" {
			view.IsAuthenticated = true
			view.Role = models.Role(c.GetString(ContextRoleKey))
		}

		outcome := gate.Decide(view, allowed, c.Request.URL.Path)
		switch outcome.Kind {
		case gate.RedirectToLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": outcome.Path,
				"from":     outcome.From,
			})
		case gate.RedirectToRoleHome:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Access denied for role",
				"redirect": outcome.Path,
			})
		default:
			c.Next()
		}
	}
}
