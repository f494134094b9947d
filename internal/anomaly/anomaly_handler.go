package anomaly

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Report(c *gin.Context) {
	actorID := contextutil.GetUserID(c.Request.Context())
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	canReadAll := c.GetString("role") == "manager"

	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Report(c.Request.Context(), actorID, canReadAll, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
