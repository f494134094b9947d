package punch

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, idempotent gin.HandlerFunc) {
	clock := r.Group("/clock")
	clock.Use(authn)
	{
		clock.POST("/punch",
			middleware.RateLimitByUser(1, 5),
			idempotent,
			h.Record,
		)
		clock.GET("/records",
			middleware.RateLimitByUser(3, 10),
			h.Query,
		)
	}
}
