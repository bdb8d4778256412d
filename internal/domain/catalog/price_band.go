package catalog

import (
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
)

// PriceBand is a half-open price range [Min, Max) in catalog units.
// Max of zero means unbounded.
type PriceBand struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max,omitempty"`

	legacyLabel string
}

// Contains reports whether price falls inside the band
func (b PriceBand) Contains(price int64) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price < b.Max
}

// The legacy labels shipped with the first storefront release. They used a
// ×10 display scale and one of them carried a typo; they stay accepted so
// old links keep working, but they resolve to the same thresholds as the
// canonical ids.
var priceBands = []PriceBand{
	{ID: "under-50", Label: "Under 50 DZD", Min: 0, Max: 50, legacyLabel: "Under 500DZD"},
	{ID: "50-100", Label: "50 - 100 DZD", Min: 50, Max: 100, legacyLabel: "500DZD - 1000"},
	{ID: "100-200", Label: "100 - 200 DZD", Min: 100, Max: 200, legacyLabel: "1000D|D - 200DZD"},
	{ID: "200-300", Label: "200 - 300 DZD", Min: 200, Max: 300, legacyLabel: "2000DZD - 3000DZD"},
	{ID: "300-400", Label: "300 - 400 DZD", Min: 300, Max: 400, legacyLabel: "3000DZD - 4000DZD"},
	{ID: "400-plus", Label: "400 DZD and over", Min: 400, legacyLabel: "Over 4000DZD"},
}

// ErrUnknownPriceBand is returned for an unrecognised band value
var ErrUnknownPriceBand = shared.NewDomainError("INVALID_PRICE_BAND", "Unknown price range")

// PriceBands returns the fixed bands in ascending order
func PriceBands() []PriceBand {
	out := make([]PriceBand, len(priceBands))
	copy(out, priceBands)
	return out
}

// ParsePriceBand resolves a band by id, label or legacy label
func ParsePriceBand(value string) (PriceBand, error) {
	v := strings.TrimSpace(value)
	for _, b := range priceBands {
		if strings.EqualFold(v, b.ID) || strings.EqualFold(v, b.Label) || v == b.legacyLabel {
			return b, nil
		}
	}
	return PriceBand{}, ErrUnknownPriceBand
}
