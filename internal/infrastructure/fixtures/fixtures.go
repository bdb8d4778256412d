// Package fixtures serves the bundled Decora catalog and the wilaya
// shipping table from JSON files compiled into the binary.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shipping"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	productsFile   = "data/products.json"
	categoriesFile = "data/categories.json"
	regionsFile    = "data/regions.json"
	officesFile    = "data/offices.json"
)

// CatalogSource implements catalog.Source over the embedded files.
type CatalogSource struct{}

// NewCatalogSource creates the embedded catalog source
func NewCatalogSource() *CatalogSource {
	return &CatalogSource{}
}

// LoadProducts returns the bundled products in featured order
func (CatalogSource) LoadProducts(_ context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := decode(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LoadCategories returns the bundled categories
func (CatalogSource) LoadCategories(_ context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := decode(categoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ShippingTable builds the wilaya pricing and pickup office table
func ShippingTable() (*shipping.Table, error) {
	var regions []shipping.Region
	if err := decode(regionsFile, &regions); err != nil {
		return nil, err
	}
	var offices []shipping.PickupOffice
	if err := decode(officesFile, &offices); err != nil {
		return nil, err
	}
	return shipping.NewTable(regions, offices)
}

func decode(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}
