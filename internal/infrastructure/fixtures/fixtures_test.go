package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shipping"
)

func TestCatalogSource(t *testing.T) {
	cat, err := catalog.Load(context.Background(), NewCatalogSource())
	require.NoError(t, err)

	assert.Len(t, cat.Products(), 19)
	assert.Len(t, cat.Categories(), 5)

	t.Run("every product belongs to a category", func(t *testing.T) {
		names := map[string]bool{}
		for _, c := range cat.Categories() {
			names[c.Name] = true
		}
		for _, p := range cat.Products() {
			assert.True(t, names[p.Category], "product %d category %q", p.ID, p.Category)
		}
	})

	t.Run("slug resolves to accented category", func(t *testing.T) {
		page := cat.Browse(catalog.Query{Category: "wall-decor"})
		assert.Equal(t, 4, page.Total)
	})

	t.Run("lamp lookup", func(t *testing.T) {
		p, ok := cat.FindProduct(5)
		require.True(t, ok)
		assert.Equal(t, "Brass Dome Table Lamp", p.Name)
		assert.Equal(t, "Gold", p.DefaultColor())
	})
}

func TestShippingTable(t *testing.T) {
	table, err := ShippingTable()
	require.NoError(t, err)

	assert.Len(t, table.Regions(), 20)
	assert.Equal(t, 1, table.Regions()[0].ID)

	alger, ok := table.Region(16)
	require.True(t, ok)
	assert.Equal(t, int64(500), alger.DoorToDoorPrice)
	assert.Equal(t, int64(300), alger.OfficePickupPrice)
	assert.Len(t, table.OfficesIn(16), 3)

	assert.False(t, table.HasOffices(1))
	assert.True(t, table.OfficeInRegion("office-4", 31))

	id := 31
	assert.Equal(t, int64(400), table.Cost(&id, shipping.MethodOfficePickup).IntPart())
}
