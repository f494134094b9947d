package middleware

import (
	"net/http"
	"strings"

	"go-timeclock/internal/account"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware authenticates the opaque bearer token against the token
// store. Tokens are not self-describing, so the caller identifies itself
// with X-User-ID and the pair is checked together.
func AuthMiddleware(tokens token.Service, accounts account.Service, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("middleware.auth")

	return func(c *gin.Context) {
		accessToken, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			accessToken = ""
		}
		userID := c.GetHeader("X-User-ID")

		if accessToken == "" || userID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		status, err := tokens.Validate(c.Request.Context(), accessToken, userID)
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Could not verify token, retry later", nil)
			c.Abort()
			return
		}

		switch status {
		case token.StatusValid:
		case token.StatusExpired:
			response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Expired", nil)
			c.Abort()
			return
		default:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid", nil)
			c.Abort()
			return
		}

		role := ""
		if acc, err := accounts.Get(c.Request.Context(), userID); err == nil {
			role = acc.Role
		} else {
			// a token can outlive its account row; treat as plain employee
			log.Warn("account lookup during auth failed", zap.String("user_id", userID), zap.Error(err))
		}

		c.Set("user_id", userID)
		c.Set("role", role)

		ctx := contextutil.WithUserID(c.Request.Context(), userID)
		ctx = contextutil.WithLogger(ctx, log.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("user_id", userID),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
