package shipping

import (
	"testing"

	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		[]Region{
			{ID: 31, Name: "Oran", DoorToDoorPrice: 700, OfficePickupPrice: 400},
			{ID: 16, Name: "Alger", DoorToDoorPrice: 500, OfficePickupPrice: 300},
			{ID: 1, Name: "Adrar", DoorToDoorPrice: 1200, OfficePickupPrice: 800},
		},
		[]PickupOffice{
			{ID: "office-1", Name: "Decora Central Office", RegionID: 16},
			{ID: "office-2", Name: "Decora Hydra", RegionID: 16},
			{ID: "office-4", Name: "Decora Oran Centre", RegionID: 31},
		},
	)
	require.NoError(t, err)
	return table
}

func intPtr(v int) *int { return &v }

func TestMethod_IsValid(t *testing.T) {
	assert.True(t, MethodDoorToDoor.IsValid())
	assert.True(t, MethodOfficePickup.IsValid())
	assert.False(t, Method("drone").IsValid())
	assert.False(t, Method("").IsValid())
}

func TestNewTable(t *testing.T) {
	t.Run("sorts regions by id", func(t *testing.T) {
		regions := testTable(t).Regions()
		require.Len(t, regions, 3)
		assert.Equal(t, []int{1, 16, 31}, []int{regions[0].ID, regions[1].ID, regions[2].ID})
	})

	t.Run("rejects office in unknown region", func(t *testing.T) {
		_, err := NewTable([]Region{{ID: 1}}, []PickupOffice{{ID: "x", RegionID: 2}})
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewTable([]Region{{ID: 1, DoorToDoorPrice: -1}}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate regions", func(t *testing.T) {
		_, err := NewTable([]Region{{ID: 1}, {ID: 1}}, nil)
		assert.Error(t, err)
	})
}

func TestTable_Offices(t *testing.T) {
	table := testTable(t)

	assert.Len(t, table.OfficesIn(16), 2)
	assert.Equal(t, "office-1", table.OfficesIn(16)[0].ID)
	assert.Empty(t, table.OfficesIn(1))
	assert.NotNil(t, table.OfficesIn(1))

	assert.True(t, table.HasOffices(31))
	assert.False(t, table.HasOffices(1))

	assert.True(t, table.OfficeInRegion("office-4", 31))
	assert.False(t, table.OfficeInRegion("office-4", 16))
	assert.False(t, table.OfficeInRegion("office-99", 16))
}

func TestTable_Cost(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name   string
		region *int
		method Method
		want   int64
	}{
		{"no region costs nothing", nil, MethodDoorToDoor, 0},
		{"unknown region costs nothing", intPtr(99), MethodDoorToDoor, 0},
		{"alger door to door", intPtr(16), MethodDoorToDoor, 500},
		{"alger office pickup", intPtr(16), MethodOfficePickup, 300},
		{"adrar door to door", intPtr(1), MethodDoorToDoor, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Cost(tt.region, tt.method)
			assert.True(t, got.Equals(valueobject.NewMoneyFromInt(tt.want)), "got %s", got)
		})
	}
}
