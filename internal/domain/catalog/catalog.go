package catalog

import (
	"context"
	"fmt"

	"github.com/decora/storefront/internal/domain/shared"
)

// DefaultRelatedLimit is how many related products a product page shows
const DefaultRelatedLimit = 4

// Lookup resolves product ids. The boolean is false when the id does not
// refer to a catalog product.
type Lookup interface {
	FindProduct(id int64) (Product, bool)
}

// LookupFunc adapts a function to Lookup
type LookupFunc func(id int64) (Product, bool)

// FindProduct calls f(id)
func (f LookupFunc) FindProduct(id int64) (Product, bool) {
	return f(id)
}

// Source loads the full catalog from a backing store
type Source interface {
	LoadProducts(ctx context.Context) ([]Product, error)
	LoadCategories(ctx context.Context) ([]Category, error)
}

// Catalog is the immutable, in-memory product and category store. It is
// safe for concurrent readers.
type Catalog struct {
	products   []Product
	byID       map[int64]int
	categories []Category
	bySlug     map[string]int
}

// NewCatalog validates and indexes products and categories. Product order
// is kept as the "featured" order.
func NewCatalog(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		byID:       make(map[int64]int, len(products)),
		categories: make([]Category, 0, len(categories)),
		bySlug:     make(map[string]int, len(categories)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", fmt.Sprintf("Duplicate product id %d", p.ID))
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	for _, cat := range categories {
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Slug, err)
		}
		if _, dup := c.bySlug[cat.Slug]; dup {
			return nil, shared.NewDomainError("DUPLICATE_CATEGORY", fmt.Sprintf("Duplicate category slug %q", cat.Slug))
		}
		c.bySlug[cat.Slug] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Load builds a catalog from a source
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	categories, err := src.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return NewCatalog(products, categories)
}

// FindProduct implements Lookup
func (c *Catalog) FindProduct(id int64) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Products returns all products in featured order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns all categories
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryBySlug finds a category by slug
func (c *Catalog) CategoryBySlug(slug string) (Category, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Trending returns trending products in featured order
func (c *Catalog) Trending() []Product {
	out := make([]Product, 0)
	for _, p := range c.products {
		if p.Trending {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products sharing p's category, excluding p
func (c *Catalog) Related(p Product, limit int) []Product {
	out := make([]Product, 0, limit)
	for _, other := range c.products {
		if len(out) >= limit {
			break
		}
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		out = append(out, other)
	}
	return out
}

// Browse runs the filter, sort and paginate pipeline over the catalog
func (c *Catalog) Browse(q Query) shared.Paginated[Product] {
	return Browse(c.products, c.categories, q)
}

// Options lists the filter values available in this catalog
func (c *Catalog) Options() FilterOptions {
	return OptionsFor(c.products)
}
