package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shipping"
	"github.com/go-playground/validator/v10"
)

// Form is the customer's delivery details. Required fields depend on the
// shipping method: address for door-to-door, an office for pickup.
type Form struct {
	FirstName      string          `json:"first_name" validate:"required,max=100"`
	LastName       string          `json:"last_name" validate:"required,max=100"`
	Email          string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string          `json:"phone" validate:"required,max=30"`
	RegionID       *int            `json:"wilaya_id,omitempty" validate:"required"`
	Address        string          `json:"address,omitempty" validate:"required_if=ShippingMethod doorToDoor,max=500"`
	ShippingMethod shipping.Method `json:"shipping_method" validate:"required,oneof=doorToDoor officePickup"`
	PickupOfficeID string          `json:"pickup_office_id,omitempty" validate:"required_if=ShippingMethod officePickup"`
	Notes          string          `json:"notes,omitempty" validate:"max=1000"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewForm returns an empty form defaulting to door-to-door delivery
func NewForm() Form {
	return Form{ShippingMethod: shipping.MethodDoorToDoor}
}

// normalized trims free-text fields and defaults the shipping method
func (f Form) normalized() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.PickupOfficeID = strings.TrimSpace(f.PickupOfficeID)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.ShippingMethod == "" {
		f.ShippingMethod = shipping.MethodDoorToDoor
	}
	return f
}

// RecipientName is the full name on the order
func (f Form) RecipientName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// Validate checks required fields for the current shipping method and that
// region and office resolve against the table. The returned error carries
// one detail per failing field, keyed by its JSON name.
func (f Form) Validate(table *shipping.Table) error {
	details := make(map[string]string)
	if err := formValidator.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	if f.RegionID != nil {
		if _, ok := table.Region(*f.RegionID); !ok {
			details["wilaya_id"] = "unknown"
		}
	}
	if f.ShippingMethod == shipping.MethodOfficePickup && f.PickupOfficeID != "" && f.RegionID != nil {
		if !table.OfficeInRegion(f.PickupOfficeID, *f.RegionID) {
			details["pickup_office_id"] = "not_in_region"
		}
	}
	if len(details) > 0 {
		return shared.ErrValidation.WithDetails(details)
	}
	return nil
}
