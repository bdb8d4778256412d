package cart

import (
	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shared/valueobject"
)

// PricedLine is a line joined with its product. Product is nil and
// LineTotal zero when the product no longer resolves.
type PricedLine struct {
	LineItem
	Product   *catalog.Product
	LineTotal valueobject.Money
}

// Available reports whether the line's product resolved
func (l PricedLine) Available() bool {
	return l.Product != nil
}

// Priced is a snapshot of the cart with prices resolved
type Priced struct {
	Lines    []PricedLine
	Subtotal valueobject.Money
	Count    int
}

// Price resolves every line against lookup. Subtotal equals Total(lookup).
func (c *Cart) Price(lookup catalog.Lookup) Priced {
	out := Priced{
		Lines:    make([]PricedLine, 0, len(c.Lines)),
		Subtotal: valueobject.Zero(),
		Count:    c.Count(),
	}
	for _, l := range c.Lines {
		pl := PricedLine{LineItem: l, LineTotal: valueobject.Zero()}
		if p, ok := lookup.FindProduct(l.ProductID); ok {
			pl.Product = &p
			pl.LineTotal = p.UnitPrice().MultiplyByInt(int64(l.Quantity))
			out.Subtotal = out.Subtotal.Add(pl.LineTotal)
		}
		out.Lines = append(out.Lines, pl)
	}
	return out
}
