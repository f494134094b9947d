package notify

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListWarnings(c *gin.Context) {
	managerID := contextutil.GetUserID(c.Request.Context())
	if managerID == "" {
		managerID = c.GetString("user_id")
	}

	alerts, err := h.service.ListForManager(c.Request.Context(), managerID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, alerts, nil)
}
