package handler

import (
	"strconv"

	catalogapp "github.com/decora/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories, product listings and product pages
type CatalogHandler struct {
	BaseHandler
	svc *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(svc *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListProducts godoc
// @Summary      List products
// @Description  Filters by category, trending, type, material, color and price band, then sorts and pages
// @Tags         catalog
// @Produce      json
// @Param        category query string false "Category name or slug"
// @Param        trending query bool   false "Only trending products"
// @Param        type     query string false "Product type"
// @Param        material query string false "Material"
// @Param        color    query string false "Color"
// @Param        price    query string false "Price band"
// @Param        sort     query string false "Sort key"
// @Param        page     query int    false "Page number" minimum(1)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req catalogapp.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	list, err := h.svc.ListProducts(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// GetProduct godoc
// @Summary      Get a product
// @Description  Returns the product and up to four related products
// @Tags         catalog
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Trending godoc
// @Summary      List trending products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /catalog/trending [get]
func (h *CatalogHandler) Trending(c *gin.Context) {
	products, err := h.svc.Trending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// FilterOptions godoc
// @Summary      List filter options
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.FilterOptionsResponse}
// @Router       /catalog/filters [get]
func (h *CatalogHandler) FilterOptions(c *gin.Context) {
	h.Success(c, h.svc.FilterOptions(c.Request.Context()))
}
