package handler

import (
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/checkout"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler serves the checkout form and order submission
type CheckoutHandler struct {
	BaseHandler
	svc *storefront.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(svc *storefront.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Get godoc
// @Summary      Get the checkout
// @Description  State, form, priced summary, notice, offices of the selected region and the confirmation once placed
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=storefront.CheckoutResponse}
// @Security     SessionToken
// @Router       /checkout [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetCheckout(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateForm godoc
// @Summary      Replace the checkout form
// @Description  Switching to a region without offices clears the office and falls back to door-to-door
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.Form true "Form"
// @Success      200 {object} dto.Response{data=storefront.CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /checkout/form [put]
func (h *CheckoutHandler) UpdateForm(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}

	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.svc.UpdateCheckoutForm(c.Request.Context(), id, form)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit godoc
// @Summary      Place the order
// @Description  Validates the form and starts placement; poll GET /checkout for the outcome
// @Tags         checkout
// @Produce      json
// @Success      202 {object} dto.Response{data=storefront.CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /checkout/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.SubmitCheckout(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, resp)
}

// Reset godoc
// @Summary      Start a new checkout after a placed order
// @Tags         checkout
// @Produce      json
// @Success      200 {object} dto.Response{data=storefront.CheckoutResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /checkout/reset [post]
func (h *CheckoutHandler) Reset(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResetCheckout(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *CheckoutHandler) session(c *gin.Context) (uuid.UUID, bool) {
	id, ok := sessionID(c)
	if !ok {
		h.HandleError(c, session.ErrSessionInvalid)
	}
	return id, ok
}
