package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func band(t *testing.T, value string) *PriceBand {
	t.Helper()
	b, err := ParsePriceBand(value)
	require.NoError(t, err)
	return &b
}

// ============================================
// Price Band Tests
// ============================================

func TestPriceBand_Contains(t *testing.T) {
	tests := []struct {
		band  string
		price int64
		want  bool
	}{
		{"under-50", 0, true},
		{"under-50", 49, true},
		{"under-50", 50, false},
		{"50-100", 50, true},
		{"50-100", 99, true},
		{"50-100", 100, false},
		{"100-200", 100, true},
		{"300-400", 399, true},
		{"300-400", 400, false},
		{"400-plus", 400, true},
		{"400-plus", 100000, true},
	}
	for _, tt := range tests {
		b, err := ParsePriceBand(tt.band)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Contains(tt.price), "%s contains %d", tt.band, tt.price)
	}
}

func TestParsePriceBand(t *testing.T) {
	t.Run("legacy labels resolve to canonical bands", func(t *testing.T) {
		legacy := map[string]string{
			"Under 500DZD":      "under-50",
			"500DZD - 1000":     "50-100",
			"1000D|D - 200DZD":  "100-200",
			"2000DZD - 3000DZD": "200-300",
			"3000DZD - 4000DZD": "300-400",
			"Over 4000DZD":      "400-plus",
		}
		for label, id := range legacy {
			b, err := ParsePriceBand(label)
			require.NoError(t, err, label)
			assert.Equal(t, id, b.ID)
		}
	})

	t.Run("accepts display labels case-insensitively", func(t *testing.T) {
		b, err := ParsePriceBand("under 50 dzd")
		require.NoError(t, err)
		assert.Equal(t, "under-50", b.ID)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParsePriceBand("cheap")
		assert.ErrorIs(t, err, ErrUnknownPriceBand)
	})
}

func TestPriceBands_AreContiguous(t *testing.T) {
	bands := PriceBands()
	require.Len(t, bands, 6)
	assert.Equal(t, int64(0), bands[0].Min)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].Max, bands[i].Min)
	}
	assert.Zero(t, bands[len(bands)-1].Max)
}

// ============================================
// Browse Tests
// ============================================

func TestBrowse_UnderFiftyBand(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 30, Colors: []string{"Red"}},
		{ID: 2, Name: "B", Price: 60, Colors: []string{"Red"}},
		{ID: 3, Name: "C", Price: 120, Colors: []string{"Red"}},
	}

	page := Browse(products, nil, Query{Price: band(t, "Under 500DZD")})

	assert.Equal(t, []int64{1}, ids(page.Items))
	assert.Equal(t, 1, page.Total)
}

func TestBrowse_Predicates(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int64
	}{
		{"no predicates keeps featured order", Query{}, []int64{1, 2, 3, 4, 5, 6}},
		{"category substring", Query{Category: "wall"}, []int64{1, 4}},
		{"category slug resolves to name", Query{Category: "wall-decor"}, []int64{1, 4}},
		{"category ignores case and accents", Query{Category: "DECOR"}, []int64{1, 3, 4}},
		{"unknown category", Query{Category: "garden"}, []int64{}},
		{"trending only", Query{TrendingOnly: true}, []int64{1, 3, 5}},
		{"type is exact", Query{Type: "Lamp"}, []int64{2}},
		{"type is case sensitive", Query{Type: "lamp"}, []int64{}},
		{"material substring", Query{Material: "Wood"}, []int64{6}},
		{"color any variant", Query{Color: "Gold"}, []int64{2, 4}},
		{"color substring", Query{Color: "Green"}, []int64{3}},
		{"combined", Query{Category: "decor", TrendingOnly: true}, []int64{1, 3}},
		{"price band", Query{Price: &PriceBand{Min: 200, Max: 300}}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Browse(testProducts(), testCategories(), tt.query)
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

func TestBrowse_Sort(t *testing.T) {
	tests := []struct {
		sort SortKey
		want []int64
	}{
		{SortFeatured, []int64{1, 2, 3, 4, 5, 6}},
		{"", []int64{1, 2, 3, 4, 5, 6}},
		{SortPriceAsc, []int64{1, 2, 3, 4, 6, 5}},
		{SortPriceDesc, []int64{5, 6, 4, 3, 2, 1}},
		{SortNewest, []int64{6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			page := Browse(testProducts(), nil, Query{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

func TestBrowse_SortIsStable(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "A", Price: 100, Colors: []string{"Red"}},
		{ID: 2, Name: "B", Price: 50, Colors: []string{"Red"}},
		{ID: 3, Name: "C", Price: 100, Colors: []string{"Red"}},
	}
	page := Browse(products, nil, Query{Sort: SortPriceDesc})
	assert.Equal(t, []int64{1, 3, 2}, ids(page.Items))
}

func TestBrowse_DoesNotMutateInput(t *testing.T) {
	products := testProducts()
	Browse(products, nil, Query{Sort: SortNewest})
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(products))
}

func TestBrowse_Pagination(t *testing.T) {
	products := make([]Product, 0, 20)
	for i := int64(1); i <= 20; i++ {
		products = append(products, Product{ID: i, Name: "P", Price: i, Colors: []string{"Red"}})
	}

	first := Browse(products, nil, Query{})
	assert.Len(t, first.Items, PageSize)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.TotalPages)

	last := Browse(products, nil, Query{Page: 3})
	assert.Equal(t, []int64{19, 20}, ids(last.Items))

	beyond := Browse(products, nil, Query{Page: 7})
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 20, beyond.Total)
}

// ============================================
// Sort Key And Options Tests
// ============================================

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"", SortFeatured},
		{"Featured", SortFeatured},
		{"price: low to high", SortPriceAsc},
		{"price-desc", SortPriceDesc},
		{"NEWEST", SortNewest},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSortKey("popular")
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestOptionsFor(t *testing.T) {
	opts := OptionsFor(testProducts())

	assert.Equal(t, []string{"Lamp", "Mirror", "Table", "Throw", "Vase", "Wall Hanging"}, opts.Types)
	assert.Contains(t, opts.Colors, "Gold")
	assert.Len(t, opts.Colors, 8)
	assert.Len(t, opts.PriceBands, 6)
	assert.Equal(t, SortKeys(), opts.Sorts)
}

func TestOptionsFor_Empty(t *testing.T) {
	opts := OptionsFor(nil)
	assert.NotNil(t, opts.Types)
	assert.Empty(t, opts.Materials)
}
