package anomaly

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc) {
	anomalies := r.Group("/anomalies")
	anomalies.Use(authn)
	{
		anomalies.GET("",
			middleware.RateLimitByUser(3, 10),
			h.Report,
		)
	}
}
