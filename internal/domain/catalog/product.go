package catalog

import (
	"slices"
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
)

// Product is a read-only catalog entry. Price is expressed in whole
// catalog units (DZD).
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Price        int64    `json:"price"`
	Category     string   `json:"category"`
	Trending     bool     `json:"trending"`
	Colors       []string `json:"colors"`
	Availability string   `json:"availability"`
	Material     string   `json:"material,omitempty"`
	Dimensions   string   `json:"dimensions,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	Type         string   `json:"type,omitempty"`
}

// Validate checks the invariants every catalog product must hold
func (p Product) Validate() error {
	if p.ID <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product id must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if p.Price < 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	if len(p.Colors) == 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product must offer at least one color")
	}
	return nil
}

// UnitPrice returns the price as money
func (p Product) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyFromInt(p.Price)
}

// HasColor reports whether color is one of the product's variants
func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// DefaultColor is the first listed variant
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// Thumbnail returns the first image reference, if any
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
