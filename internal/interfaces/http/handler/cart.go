package handler

import (
	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/domain/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler serves the session cart
type CartHandler struct {
	BaseHandler
	svc *storefront.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(svc *storefront.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Get godoc
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=storefront.CartResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetCart(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Count godoc
// @Summary      Get the cart badge count
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=storefront.CartCountResponse}
// @Security     SessionToken
// @Router       /cart/count [get]
func (h *CartHandler) Count(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.CartCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Merges into an existing line with the same product and color
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body storefront.AddToCartRequest true "Item"
// @Success      200 {object} dto.Response{data=storefront.CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     SessionToken
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}

	var req storefront.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.svc.AddToCart(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem godoc
// @Summary      Set a line quantity
// @Description  A quantity of zero or less removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        lineId  path string true "Line ID"
// @Param        request body storefront.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} dto.Response{data=storefront.CartResponse}
// @Security     SessionToken
// @Router       /cart/items/{lineId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req storefront.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.svc.UpdateCartItem(c.Request.Context(), id, lineID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        lineId path string true "Line ID"
// @Success      200 {object} dto.Response{data=storefront.CartResponse}
// @Security     SessionToken
// @Router       /cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	resp, err := h.svc.RemoveCartItem(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=storefront.CartResponse}
// @Security     SessionToken
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	id, ok := h.session(c)
	if !ok {
		return
	}
	resp, err := h.svc.ClearCart(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *CartHandler) session(c *gin.Context) (uuid.UUID, bool) {
	id, ok := sessionID(c)
	if !ok {
		h.HandleError(c, session.ErrSessionInvalid)
	}
	return id, ok
}
