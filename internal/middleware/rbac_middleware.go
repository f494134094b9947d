package middleware

import (
	"net/http"

	"go-timeclock/internal/rbac"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize guards a route with a resource/action check against the
// role the auth middleware attached.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", resource+":"+action)
			c.Abort()
			return
		}
		c.Next()
	}
}
