// Package shipping holds the static regional rate table and the pickup
// offices customers can collect orders from.
package shipping

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
)

// Method is how an order reaches the customer
type Method string

const (
	MethodDoorToDoor   Method = "doorToDoor"
	MethodOfficePickup Method = "officePickup"
)

// IsValid checks if the method is known
func (m Method) IsValid() bool {
	return m == MethodDoorToDoor || m == MethodOfficePickup
}

// Region is a wilaya with its two delivery price points
type Region struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	DoorToDoorPrice   int64  `json:"door_to_door_price"`
	OfficePickupPrice int64  `json:"office_pickup_price"`
}

// PriceFor returns the shipping price for the given method
func (r Region) PriceFor(m Method) valueobject.Money {
	if m == MethodOfficePickup {
		return valueobject.NewMoneyFromInt(r.OfficePickupPrice)
	}
	return valueobject.NewMoneyFromInt(r.DoorToDoorPrice)
}

// PickupOffice is a collection point inside a region
type PickupOffice struct {
	ID       string `json:"id"`
	Name     string `json:"office_name"`
	Address  string `json:"address"`
	RegionID int    `json:"wilaya_id"`
}

// Table indexes regions and offices. It is immutable once built.
type Table struct {
	regions   []Region
	regionIdx map[int]int
	offices   map[string]PickupOffice
	byRegion  map[int][]PickupOffice
}

// NewTable validates and indexes the rate table. Every office must point
// at a known region.
func NewTable(regions []Region, offices []PickupOffice) (*Table, error) {
	t := &Table{
		regions:   make([]Region, 0, len(regions)),
		regionIdx: make(map[int]int, len(regions)),
		offices:   make(map[string]PickupOffice, len(offices)),
		byRegion:  make(map[int][]PickupOffice),
	}
	for _, r := range regions {
		if r.DoorToDoorPrice < 0 || r.OfficePickupPrice < 0 {
			return nil, shared.NewDomainError("INVALID_REGION", fmt.Sprintf("Region %d has a negative price", r.ID))
		}
		if _, dup := t.regionIdx[r.ID]; dup {
			return nil, shared.NewDomainError("INVALID_REGION", fmt.Sprintf("Duplicate region id %d", r.ID))
		}
		t.regions = append(t.regions, r)
	}
	slices.SortFunc(t.regions, func(a, b Region) int { return cmp.Compare(a.ID, b.ID) })
	for i, r := range t.regions {
		t.regionIdx[r.ID] = i
	}

	for _, o := range offices {
		if _, ok := t.regionIdx[o.RegionID]; !ok {
			return nil, shared.NewDomainError("INVALID_OFFICE", fmt.Sprintf("Office %s references unknown region %d", o.ID, o.RegionID))
		}
		if _, dup := t.offices[o.ID]; dup {
			return nil, shared.NewDomainError("INVALID_OFFICE", fmt.Sprintf("Duplicate office id %s", o.ID))
		}
		t.offices[o.ID] = o
		t.byRegion[o.RegionID] = append(t.byRegion[o.RegionID], o)
	}
	return t, nil
}

// Regions returns every region ordered by id
func (t *Table) Regions() []Region {
	return slices.Clone(t.regions)
}

// Region looks up a region by id
func (t *Table) Region(id int) (Region, bool) {
	i, ok := t.regionIdx[id]
	if !ok {
		return Region{}, false
	}
	return t.regions[i], true
}

// Office looks up a pickup office by id
func (t *Table) Office(id string) (PickupOffice, bool) {
	o, ok := t.offices[id]
	return o, ok
}

// OfficesIn returns the offices of a region in declaration order
func (t *Table) OfficesIn(regionID int) []PickupOffice {
	out := slices.Clone(t.byRegion[regionID])
	if out == nil {
		return []PickupOffice{}
	}
	return out
}

// HasOffices reports whether the region has at least one pickup office
func (t *Table) HasOffices(regionID int) bool {
	return len(t.byRegion[regionID]) > 0
}

// OfficeInRegion reports whether officeID exists and belongs to regionID
func (t *Table) OfficeInRegion(officeID string, regionID int) bool {
	o, ok := t.offices[officeID]
	return ok && o.RegionID == regionID
}

// Cost is the shipping price for an optional region. No region, or one
// that does not resolve, costs nothing.
func (t *Table) Cost(regionID *int, m Method) valueobject.Money {
	if regionID == nil {
		return valueobject.Zero()
	}
	r, ok := t.Region(*regionID)
	if !ok {
		return valueobject.Zero()
	}
	return r.PriceFor(m)
}
