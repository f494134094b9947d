package ledger

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

func (h *Handler) GetSalary(c *gin.Context) {
	actorID := contextutil.GetUserID(c.Request.Context())
	if actorID == "" {
		actorID = c.GetString("user_id")
	}

	target := c.Query("user_id")
	if target == "" {
		target = actorID
	}
	if target != actorID && c.GetString("role") != "manager" {
		writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.Read(c.Request.Context(), target)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetBase(c *gin.Context) {
	var req SetBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.SetBase(c.Request.Context(), req.UserID, req.Salary); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Read(c.Request.Context(), req.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
