package handler

import (
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler starts and ends browsing sessions
type SessionHandler struct {
	BaseHandler
	svc *storefront.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(svc *storefront.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Start godoc
// @Summary      Start a session
// @Description  Creates an empty cart and checkout and returns the session token
// @Tags         sessions
// @Produce      json
// @Success      201 {object} dto.Response{data=storefront.SessionResponse}
// @Router       /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	resp, err := h.svc.StartSession(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// End godoc
// @Summary      End the current session
// @Tags         sessions
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /sessions [delete]
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		h.HandleError(c, session.ErrSessionInvalid)
		return
	}
	if err := h.svc.EndSession(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
