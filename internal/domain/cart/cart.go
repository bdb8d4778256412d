// Package cart models the per-session shopping cart.
package cart

import (
	"slices"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shared"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ErrInvalidQuantity is returned when adding fewer than one unit
var ErrInvalidQuantity = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")

// LineItem is one product/color combination in the cart. Quantity is
// always at least 1 while the line exists.
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
}

// Cart is the ordered list of line items. The zero value is an empty cart.
type Cart struct {
	Lines []LineItem `json:"lines"`
}

// New creates an empty cart
func New() *Cart {
	return &Cart{Lines: make([]LineItem, 0)}
}

// AddItem merges into the line with the same product and color, or appends
// a new line. The product is not checked against the catalog here.
func (c *Cart) AddItem(productID int64, quantity int, color string) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].Color == color {
			c.Lines[i].Quantity += quantity
			return c.Lines[i], nil
		}
	}
	line := LineItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Color:     color,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
// Unknown line ids are ignored.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(lineID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes a line; unknown ids are ignored
func (c *Cart) Remove(lineID uuid.UUID) {
	c.Lines = slices.DeleteFunc(c.Lines, func(l LineItem) bool { return l.ID == lineID })
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = make([]LineItem, 0)
}

// Line finds a line by id
func (c *Cart) Line(lineID uuid.UUID) (LineItem, bool) {
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return LineItem{}, false
}

// Items returns a copy of the lines
func (c *Cart) Items() []LineItem {
	return slices.Clone(c.Lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the total number of units, not the number of lines
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Total sums price × quantity over lines whose product resolves. Lines
// pointing at absent products contribute nothing.
func (c *Cart) Total(lookup catalog.Lookup) valueobject.Money {
	total := valueobject.Zero()
	for _, l := range c.Lines {
		p, ok := lookup.FindProduct(l.ProductID)
		if !ok {
			continue
		}
		total = total.Add(p.UnitPrice().MultiplyByInt(int64(l.Quantity)))
	}
	return total
}
