package handler

import (
	"strconv"

	shippingapp "github.com/decora/storefront/internal/application/shipping"
	"github.com/gin-gonic/gin"
)

// ShippingHandler serves wilayas and their pickup offices
type ShippingHandler struct {
	BaseHandler
	svc *shippingapp.Service
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(svc *shippingapp.Service) *ShippingHandler {
	return &ShippingHandler{svc: svc}
}

// ListRegions godoc
// @Summary      List shipping regions
// @Tags         shipping
// @Produce      json
// @Success      200 {object} dto.Response{data=[]shippingapp.RegionResponse}
// @Router       /shipping/regions [get]
func (h *ShippingHandler) ListRegions(c *gin.Context) {
	h.Success(c, h.svc.ListRegions(c.Request.Context()))
}

// ListOffices godoc
// @Summary      List pickup offices of a region
// @Tags         shipping
// @Produce      json
// @Param        id path int true "Region ID"
// @Success      200 {object} dto.Response{data=[]shippingapp.OfficeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping/regions/{id}/offices [get]
func (h *ShippingHandler) ListOffices(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID")
		return
	}

	offices, err := h.svc.ListOffices(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offices)
}
