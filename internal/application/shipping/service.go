// Package shipping serves the wilaya rate table and pickup offices.
package shipping

import (
	"context"
	"fmt"

	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/decora/storefront/internal/domain/shipping"
)

// RegionResponse represents a wilaya and its delivery prices
type RegionResponse struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	DoorToDoorPrice   valueobject.Money `json:"door_to_door_price"`
	OfficePickupPrice valueobject.Money `json:"office_pickup_price"`
	HasOffices        bool              `json:"has_offices"`
}

// OfficeResponse represents a pickup office
type OfficeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"office_name"`
	Address  string `json:"address"`
	RegionID int    `json:"wilaya_id"`
}

// Service handles shipping queries
type Service struct {
	table *shipping.Table
}

// NewService creates a new shipping Service
func NewService(table *shipping.Table) *Service {
	return &Service{table: table}
}

// ListRegions returns every region ordered by id
func (s *Service) ListRegions(context.Context) []RegionResponse {
	regions := s.table.Regions()
	out := make([]RegionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, RegionResponse{
			ID:                r.ID,
			Name:              r.Name,
			DoorToDoorPrice:   r.PriceFor(shipping.MethodDoorToDoor),
			OfficePickupPrice: r.PriceFor(shipping.MethodOfficePickup),
			HasOffices:        s.table.HasOffices(r.ID),
		})
	}
	return out
}

// ListOffices returns the pickup offices of a region. A known region
// without offices yields an empty list.
func (s *Service) ListOffices(_ context.Context, regionID int) ([]OfficeResponse, error) {
	if _, ok := s.table.Region(regionID); !ok {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Region %d not found", regionID))
	}
	return ToOfficeResponses(s.table.OfficesIn(regionID)), nil
}

// Table returns the underlying rate table
func (s *Service) Table() *shipping.Table {
	return s.table
}

// ToOfficeResponses converts offices for API responses
func ToOfficeResponses(offices []shipping.PickupOffice) []OfficeResponse {
	out := make([]OfficeResponse, 0, len(offices))
	for _, o := range offices {
		out = append(out, OfficeResponse{
			ID:       o.ID,
			Name:     o.Name,
			Address:  o.Address,
			RegionID: o.RegionID,
		})
	}
	return out
}
