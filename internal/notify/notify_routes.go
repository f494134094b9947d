package notify

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, managerOnly gin.HandlerFunc) {
	warnings := r.Group("/warnings")
	warnings.Use(authn, managerOnly)
	{
		warnings.GET("",
			middleware.RateLimitByUser(3, 10),
			h.ListWarnings,
		)
	}
}
