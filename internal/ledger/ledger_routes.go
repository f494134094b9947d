package ledger

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, managerOnly gin.HandlerFunc) {
	salary := r.Group("/salary")
	salary.Use(authn)
	{
		salary.GET("",
			middleware.RateLimitByUser(3, 10),
			h.GetSalary,
		)
		salary.POST("/base",
			middleware.RateLimitByUser(0.5, 2),
			managerOnly,
			h.SetBase,
		)
	}
}
