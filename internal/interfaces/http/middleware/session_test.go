package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decora/storefront/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	tokens map[string]uuid.UUID
	err    error
}

func (f fakeVerifier) Verify(token string) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return id, nil
}

func TestSessionAuth(t *testing.T) {
	sessionID := uuid.New()
	verifier := fakeVerifier{tokens: map[string]uuid.UUID{"good": sessionID}}

	newRouter := func(v TokenVerifier) *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), SessionAuth(v))
		router.GET("/cart", func(c *gin.Context) {
			id, ok := GetSessionID(c)
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.String(http.StatusOK, id.String())
		})
		return router
	}

	tests := []struct {
		name     string
		header   string
		value    string
		verifier TokenVerifier
		status   int
		contains string
	}{
		{"bearer token", "Authorization", "Bearer good", verifier, http.StatusOK, sessionID.String()},
		{"lowercase scheme", "Authorization", "bearer good", verifier, http.StatusOK, sessionID.String()},
		{"session header", SessionTokenHeader, "good", verifier, http.StatusOK, sessionID.String()},
		{"missing token", "", "", verifier, http.StatusUnauthorized, "A session token is required"},
		{"wrong scheme", "Authorization", "Basic good", verifier, http.StatusUnauthorized, "ERR_SESSION_INVALID"},
		{"unknown token", "Authorization", "Bearer nope", verifier, http.StatusUnauthorized, "Your session is invalid"},
		{"expired token", "Authorization", "Bearer good", fakeVerifier{err: auth.ErrExpiredToken}, http.StatusUnauthorized, "Your session has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			newRouter(tt.verifier).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestSessionOrIPKey(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"

	assert.Equal(t, "ip:10.0.0.1", SessionOrIPKey(c))

	id := uuid.New()
	c.Set("session_id", id.String())
	assert.Equal(t, "session:"+id.String(), SessionOrIPKey(c))
}
