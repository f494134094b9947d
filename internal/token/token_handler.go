package token

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
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

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	status, err := h.service.Validate(c.Request.Context(), req.AccessToken, req.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	switch status {
	case StatusValid:
		response.Success(c, http.StatusOK, ValidateResponse{Result: string(status)}, nil)
	case StatusExpired:
		response.Error(c, http.StatusUnauthorized, apperror.CodeTokenExpired, string(status), nil)
	default:
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, string(StatusInvalid), nil)
	}
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken, req.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToPairResponse(pair), nil)
}

func mapToPairResponse(t AuthToken) PairResponse {
	return PairResponse{
		UserID:       t.UserID,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		IssuedAt:     t.IssuedAt.Unix(),
	}
}
