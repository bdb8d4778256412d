package catalog

import (
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
)

// ListProductsRequest is the product listing query. Empty values do not
// filter; Price accepts a band id, label or legacy label.
type ListProductsRequest struct {
	Category string `form:"category" binding:"max=100"`
	Trending bool   `form:"trending"`
	Type     string `form:"type" binding:"max=100"`
	Material string `form:"material" binding:"max=100"`
	Color    string `form:"color" binding:"max=50"`
	Price    string `form:"price" binding:"max=50"`
	Sort     string `form:"sort" binding:"max=50"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Items       string `json:"items"`
}

// ProductResponse represents a product in API responses. Image URLs are
// resolved for the client.
type ProductResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Images       []string          `json:"images"`
	Price        valueobject.Money `json:"price"`
	Category     string            `json:"category"`
	Trending     bool              `json:"trending"`
	Colors       []string          `json:"colors"`
	Availability string            `json:"availability"`
	Material     string            `json:"material,omitempty"`
	Dimensions   string            `json:"dimensions,omitempty"`
	Weight       string            `json:"weight,omitempty"`
	Type         string            `json:"type,omitempty"`
}

// ProductDetailResponse is a product page: the product and related items
type ProductDetailResponse struct {
	ProductResponse
	Related []ProductResponse `json:"related"`
}

// ProductListResponse is one page of a listing
type ProductListResponse struct {
	Items      []ProductResponse
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// FilterOptionsResponse lists the values each listing filter accepts
type FilterOptionsResponse struct {
	Types      []string            `json:"types"`
	Materials  []string            `json:"materials"`
	Colors     []string            `json:"colors"`
	PriceBands []catalog.PriceBand `json:"price_bands"`
	Sorts      []catalog.SortKey   `json:"sorts"`
}
