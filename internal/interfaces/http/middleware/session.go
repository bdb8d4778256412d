package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/decora/storefront/internal/infrastructure/auth"
	"github.com/decora/storefront/internal/infrastructure/logger"
	"github.com/decora/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionTokenHeader is the alternative to a Bearer Authorization header
const SessionTokenHeader = "X-Session-Token"

// TokenVerifier checks a session token and returns its session id
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// SessionAuth requires a valid session token. The session id is stored
// under logger.SessionIDKey for handlers and the request log.
func SessionAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortSessionInvalid(c, "A session token is required")
			return
		}

		sessionID, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortSessionInvalid(c, "Your session has expired")
				return
			}
			abortSessionInvalid(c, "Your session is invalid")
			return
		}

		c.Set(logger.SessionIDKey, sessionID.String())
		c.Next()
	}
}

// GetSessionID returns the session id set by SessionAuth
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(logger.SessionIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// extractToken reads "Authorization: Bearer <token>" or X-Session-Token
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(c.GetHeader(SessionTokenHeader))
}

func abortSessionInvalid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeSessionInvalid,
		message,
		GetRequestID(c),
	))
}
