// Package checkout prices an order and guards its submission with an
// explicit Filling → Submitting → Complete state machine.
package checkout

import (
	"errors"
	"fmt"

	"github.com/decora/storefront/internal/domain/cart"
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/decora/storefront/internal/domain/shipping"
	"github.com/google/uuid"
)

// SubmissionFailedNotice is shown when order placement fails
const SubmissionFailedNotice = "There was an error placing your order. Please try again."

// Errors raised while editing or submitting a checkout
var (
	ErrUnknownRegion      = shared.NewDomainError("UNKNOWN_REGION", "Selected region does not exist")
	ErrPickupUnavailable  = shared.NewDomainError("PICKUP_UNAVAILABLE", "Office pickup is not available in the selected region")
	ErrOfficeNotInRegion  = shared.NewDomainError("OFFICE_NOT_IN_REGION", "Selected pickup office is not in the selected region")
	ErrSubmissionPending  = shared.NewDomainError("INVALID_STATE", "Your order is already being placed")
	ErrSubmissionMismatch = shared.NewDomainError("INVALID_STATE", "Submission is no longer current")
)

// Checkout holds the form and the submission state of one session
type Checkout struct {
	State        State         `json:"state"`
	Form         Form          `json:"form"`
	Notice       string        `json:"notice,omitempty"`
	SubmissionID uuid.UUID     `json:"submission_id,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

// New returns an empty checkout in the Filling state
func New() *Checkout {
	return &Checkout{
		State: StateFilling,
		Form:  NewForm(),
	}
}

// Summary is the priced order: cart subtotal plus shipping
type Summary struct {
	Subtotal valueobject.Money `json:"subtotal"`
	Shipping valueobject.Money `json:"shipping"`
	Total    valueobject.Money `json:"total"`
	Count    int               `json:"count"`
}

// Price computes the order summary for the current form
func (c *Checkout) Price(crt *cart.Cart, lookup catalog.Lookup, table *shipping.Table) Summary {
	subtotal := crt.Total(lookup)
	ship := table.Cost(c.Form.RegionID, c.Form.ShippingMethod)
	return Summary{
		Subtotal: subtotal,
		Shipping: ship,
		Total:    subtotal.Add(ship),
		Count:    crt.Count(),
	}
}

// UpdateForm replaces the form while Filling. Region, method and office are
// applied in that order: a region change clears an office outside the new
// region and falls back to door-to-door when the region has no offices.
// Without a region change, asking for an impossible pickup is an error.
// An unknown method is always an error.
// On error the previous form is kept.
func (c *Checkout) UpdateForm(f Form, table *shipping.Table) error {
	if c.State != StateFilling {
		return c.stateError()
	}
	f = f.normalized()
	next := c.Form
	regionChanged := !sameRegion(next.RegionID, f.RegionID)

	if err := selectRegion(&next, f.RegionID, table); err != nil {
		return err
	}
	if err := selectMethod(&next, f.ShippingMethod, table); err != nil {
		if !regionChanged || !errors.Is(err, ErrPickupUnavailable) {
			return err
		}
	}
	if next.ShippingMethod == shipping.MethodOfficePickup {
		if f.PickupOfficeID == "" {
			next.PickupOfficeID = ""
		} else if err := selectOffice(&next, f.PickupOfficeID, table); err != nil && !regionChanged {
			return err
		}
	}

	next.FirstName = f.FirstName
	next.LastName = f.LastName
	next.Email = f.Email
	next.Phone = f.Phone
	next.Address = f.Address
	next.Notes = f.Notes

	c.Form = next
	return nil
}

// SelectRegion changes only the region, applying the office rules
func (c *Checkout) SelectRegion(regionID *int, table *shipping.Table) error {
	if c.State != StateFilling {
		return c.stateError()
	}
	next := c.Form
	if err := selectRegion(&next, regionID, table); err != nil {
		return err
	}
	c.Form = next
	return nil
}

func selectRegion(f *Form, regionID *int, table *shipping.Table) error {
	if regionID != nil {
		if _, ok := table.Region(*regionID); !ok {
			return ErrUnknownRegion
		}
		id := *regionID
		regionID = &id
	}
	f.RegionID = regionID
	if f.PickupOfficeID != "" && (regionID == nil || !table.OfficeInRegion(f.PickupOfficeID, *regionID)) {
		f.PickupOfficeID = ""
	}
	if f.ShippingMethod == shipping.MethodOfficePickup && (regionID == nil || !table.HasOffices(*regionID)) {
		f.ShippingMethod = shipping.MethodDoorToDoor
	}
	return nil
}

func selectMethod(f *Form, m shipping.Method, table *shipping.Table) error {
	if !m.IsValid() {
		return shared.ErrValidation.WithDetails(map[string]string{"shipping_method": "oneof"})
	}
	if m == shipping.MethodOfficePickup && (f.RegionID == nil || !table.HasOffices(*f.RegionID)) {
		return ErrPickupUnavailable
	}
	f.ShippingMethod = m
	if m == shipping.MethodDoorToDoor {
		f.PickupOfficeID = ""
	}
	return nil
}

func selectOffice(f *Form, officeID string, table *shipping.Table) error {
	if f.RegionID == nil || !table.OfficeInRegion(officeID, *f.RegionID) {
		return ErrOfficeNotInRegion
	}
	f.PickupOfficeID = officeID
	return nil
}

func sameRegion(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// BeginSubmit validates the cart and form and moves to Submitting. On any
// failure the checkout is left untouched. The returned id identifies this
// attempt for Complete and Fail.
func (c *Checkout) BeginSubmit(crt *cart.Cart, table *shipping.Table) (uuid.UUID, error) {
	if c.State == StateSubmitting {
		return uuid.Nil, ErrSubmissionPending
	}
	if !c.State.CanTransitionTo(StateSubmitting) {
		return uuid.Nil, c.stateError()
	}
	if crt.IsEmpty() {
		return uuid.Nil, shared.ErrEmptyCart
	}
	if err := c.Form.Validate(table); err != nil {
		return uuid.Nil, err
	}

	c.State = StateSubmitting
	c.Notice = ""
	c.SubmissionID = uuid.New()
	return c.SubmissionID, nil
}

// Complete records the confirmation, clears the cart and moves to Complete
func (c *Checkout) Complete(submissionID uuid.UUID, confirmation Confirmation, crt *cart.Cart) error {
	if err := c.checkSubmission(submissionID, StateComplete); err != nil {
		return err
	}
	c.State = StateComplete
	c.Confirmation = &confirmation
	c.SubmissionID = uuid.Nil
	crt.Clear()
	return nil
}

// Fail returns to Filling with a notice. The cart is kept so the customer
// can retry.
func (c *Checkout) Fail(submissionID uuid.UUID) error {
	if err := c.checkSubmission(submissionID, StateFilling); err != nil {
		return err
	}
	c.State = StateFilling
	c.Notice = SubmissionFailedNotice
	c.SubmissionID = uuid.Nil
	return nil
}

// Reset starts a new checkout after a completed order
func (c *Checkout) Reset() error {
	if c.State != StateComplete {
		return c.stateError()
	}
	*c = *New()
	return nil
}

func (c *Checkout) checkSubmission(submissionID uuid.UUID, target State) error {
	if !c.State.CanTransitionTo(target) || c.State != StateSubmitting {
		return c.stateError()
	}
	if submissionID != c.SubmissionID {
		return ErrSubmissionMismatch
	}
	return nil
}

func (c *Checkout) stateError() error {
	if c.State == StateSubmitting {
		return ErrSubmissionPending
	}
	return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Operation not allowed while checkout is %s", c.State))
}
