package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
)

// SortKey orders a product listing
type SortKey string

const (
	SortFeatured  SortKey = "Featured"
	SortPriceAsc  SortKey = "Price: Low to High"
	SortPriceDesc SortKey = "Price: High to Low"
	SortNewest    SortKey = "Newest"
)

var sortAliases = map[string]SortKey{
	"featured":   SortFeatured,
	"price-asc":  SortPriceAsc,
	"price-desc": SortPriceDesc,
	"newest":     SortNewest,
}

// ErrUnknownSort is returned for an unrecognised sort key
var ErrUnknownSort = shared.NewDomainError("INVALID_SORT", "Unknown sort order")

// SortKeys lists the supported sort keys in display order
func SortKeys() []SortKey {
	return []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest}
}

// ParseSortKey accepts the display name or its short alias. Empty means
// featured.
func ParseSortKey(value string) (SortKey, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return SortFeatured, nil
	}
	for _, k := range SortKeys() {
		if strings.EqualFold(v, string(k)) {
			return k, nil
		}
	}
	if k, ok := sortAliases[strings.ToLower(v)]; ok {
		return k, nil
	}
	return "", ErrUnknownSort
}

// sortProducts sorts in place. All orders are stable so equal keys keep
// the featured order.
func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortNewest:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(b.ID, a.ID) })
	}
}
