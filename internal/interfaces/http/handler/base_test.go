package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/infrastructure/logger"
	"github.com/decora/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	ConfigureValidator()
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(logger.RequestIDKey, "req-123")
	return c, w
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success with meta", func(t *testing.T) {
		c, w := newContext("")
		h.SuccessWithMeta(c, []string{"a", "b"}, 19, 2, 9)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 19, resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("created", func(t *testing.T) {
		c, w := newContext("")
		h.Created(c, map[string]string{"id": "1"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("accepted", func(t *testing.T) {
		c, w := newContext("")
		h.Accepted(c, nil)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("not found carries request id", func(t *testing.T) {
		c, w := newContext("")
		h.NotFound(c, "Product not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"empty cart", shared.ErrEmptyCart, http.StatusBadRequest, dto.ErrCodeEmptyCart},
		{"checkout in progress", shared.ErrCheckoutInProgress, http.StatusUnprocessableEntity, dto.ErrCodeCheckoutInProgress},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.ErrInvalidState), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"unknown error", errors.New("redis: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotContains(t, resp.Error.Message, "redis")
		})
	}

	t.Run("details are passed through", func(t *testing.T) {
		c, w := newContext("")
		h.HandleError(c, shared.ErrValidation.WithDetails(map[string]string{"phone": "required"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Please fill in all required fields", resp.Error.Message)
		assert.Equal(t, map[string]string{"phone": "required"}, resp.Error.Details)
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		c, w := newContext("")
		h.HandleError(c, nil)
		assert.False(t, c.Writer.Written())
		assert.Equal(t, 0, w.Body.Len())
	})
}

type bindTarget struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Color     string `json:"color" binding:"max=5"`
}

func TestBaseHandler_HandleBindError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantDetails map[string]string
	}{
		{"missing field uses json name", `{"color":"red"}`, dto.ErrCodeValidation, map[string]string{"product_id": "required"}},
		{"rule name is reported", `{"product_id":1,"color":"terracotta"}`, dto.ErrCodeValidation, map[string]string{"color": "max"}},
		{"wrong type", `{"product_id":"one"}`, dto.ErrCodeValidation, map[string]string{"product_id": "type"}},
		{"malformed json", `{"product_id":`, dto.ErrCodeInvalidJSON, nil},
		{"empty body", ``, dto.ErrCodeInvalidJSON, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(tt.body)
			var target bindTarget
			err := c.ShouldBindJSON(&target)
			require.Error(t, err)

			h.HandleBindError(c, err)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, resp.Error.Details)
			}
		})
	}
}
