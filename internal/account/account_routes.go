package account

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("/register", h.Register)
		accounts.POST("/login", h.Login)
	}
}
