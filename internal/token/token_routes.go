package token

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authorization := r.Group("/authorization")
	{
		authorization.POST("/authorize", h.Validate)
		authorization.POST("/refresh-token", h.Refresh)
	}
}
