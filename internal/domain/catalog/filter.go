package catalog

import (
	"slices"
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
)

// PageSize is the fixed number of products per listing page
const PageSize = 9

// Query is a complete listing request: predicates, sort and page.
// Zero-valued predicates do not constrain the result.
type Query struct {
	Category     string
	TrendingOnly bool
	Type         string
	Material     string
	Color        string
	Price        *PriceBand
	Sort         SortKey
	Page         int
}

// matches applies every predicate of q to p. categoryName is the display
// name the category value resolved to as a slug, if it did.
func (q Query) matches(p Product, categoryName string) bool {
	if q.Category != "" && !containsFolded(p.Category, q.Category) {
		if categoryName == "" || !containsFolded(p.Category, categoryName) {
			return false
		}
	}
	if q.TrendingOnly && !p.Trending {
		return false
	}
	if q.Type != "" && p.Type != q.Type {
		return false
	}
	if q.Material != "" && (p.Material == "" || !strings.Contains(p.Material, q.Material)) {
		return false
	}
	if q.Color != "" && !slices.ContainsFunc(p.Colors, func(c string) bool { return strings.Contains(c, q.Color) }) {
		return false
	}
	if q.Price != nil && !q.Price.Contains(p.Price) {
		return false
	}
	return true
}

// Browse filters, sorts and paginates products. It never mutates the input.
func Browse(products []Product, categories []Category, q Query) shared.Paginated[Product] {
	categoryName := ""
	if q.Category != "" {
		for _, c := range categories {
			if strings.EqualFold(c.Slug, q.Category) {
				categoryName = c.Name
				break
			}
		}
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p, categoryName) {
			filtered = append(filtered, p)
		}
	}
	sortProducts(filtered, q.Sort)

	return shared.Paginate(filtered, q.Page, PageSize)
}

// FilterOptions are the selectable values of each listing filter
type FilterOptions struct {
	Types      []string    `json:"types"`
	Materials  []string    `json:"materials"`
	Colors     []string    `json:"colors"`
	PriceBands []PriceBand `json:"price_bands"`
	Sorts      []SortKey   `json:"sorts"`
}

// OptionsFor derives the filter values present in products
func OptionsFor(products []Product) FilterOptions {
	var types, materials, colors []string
	for _, p := range products {
		if p.Type != "" {
			types = append(types, p.Type)
		}
		if p.Material != "" {
			materials = append(materials, p.Material)
		}
		colors = append(colors, p.Colors...)
	}
	return FilterOptions{
		Types:      uniqueSorted(types),
		Materials:  uniqueSorted(materials),
		Colors:     uniqueSorted(colors),
		PriceBands: PriceBands(),
		Sorts:      SortKeys(),
	}
}

func uniqueSorted(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		return []string{}
	}
	return out
}
