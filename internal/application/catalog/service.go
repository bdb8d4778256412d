// Package catalog serves read-only catalog queries: categories, filtered
// listings, product pages and filter options.
package catalog

import (
	"context"
	"fmt"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageResolver turns a stored image key into a URL the client can load
type ImageResolver interface {
	ResolveImage(ctx context.Context, key string) (string, error)
}

// Service handles catalog queries
type Service struct {
	catalog *catalog.Catalog
	images  ImageResolver
	logger  *zap.Logger
}

// NewService creates a new catalog Service
func NewService(c *catalog.Catalog, images ImageResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: c, images: images, logger: logger}
}

// ListCategories returns every category
func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories := s.catalog.Categories()
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		image, err := s.resolve(ctx, c.Image)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryResponse{
			Name:        c.Name,
			Slug:        c.Slug,
			Image:       image,
			Description: c.Description,
			Items:       c.Items,
		})
	}
	return out, nil
}

// ListProducts runs the listing pipeline. Unknown price bands and sort
// keys are rejected rather than ignored.
func (s *Service) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductListResponse, error) {
	q, err := toQuery(req)
	if err != nil {
		return nil, err
	}
	page := s.catalog.Browse(q)
	items, err := s.toResponses(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &ProductListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func toQuery(req ListProductsRequest) (catalog.Query, error) {
	q := catalog.Query{
		Category:     req.Category,
		TrendingOnly: req.Trending,
		Type:         req.Type,
		Material:     req.Material,
		Color:        req.Color,
		Page:         req.Page,
	}
	if req.Price != "" {
		band, err := catalog.ParsePriceBand(req.Price)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Price = &band
	}
	sortKey, err := catalog.ParseSortKey(req.Sort)
	if err != nil {
		return catalog.Query{}, err
	}
	q.Sort = sortKey
	if q.Page < 1 {
		q.Page = 1
	}
	return q, nil
}

// GetProduct returns a product with up to four related products
func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductDetailResponse, error) {
	p, ok := s.catalog.FindProduct(id)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %d not found", id))
	}
	resp, err := s.toResponse(ctx, p)
	if err != nil {
		return nil, err
	}
	related, err := s.toResponses(ctx, s.catalog.Related(p, catalog.DefaultRelatedLimit))
	if err != nil {
		return nil, err
	}
	return &ProductDetailResponse{ProductResponse: resp, Related: related}, nil
}

// Trending returns the products flagged as trending
func (s *Service) Trending(ctx context.Context) ([]ProductResponse, error) {
	return s.toResponses(ctx, s.catalog.Trending())
}

// FilterOptions lists the values available to each filter
func (s *Service) FilterOptions(context.Context) FilterOptionsResponse {
	opts := s.catalog.Options()
	return FilterOptionsResponse{
		Types:      opts.Types,
		Materials:  opts.Materials,
		Colors:     opts.Colors,
		PriceBands: opts.PriceBands,
		Sorts:      opts.Sorts,
	}
}

// Lookup exposes the catalog as a product lookup for cart pricing
func (s *Service) Lookup() catalog.Lookup {
	return s.catalog
}

func (s *Service) toResponses(ctx context.Context, products []catalog.Product) ([]ProductResponse, error) {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp, err := s.toResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) toResponse(ctx context.Context, p catalog.Product) (ProductResponse, error) {
	images := make([]string, 0, len(p.Images))
	for _, key := range p.Images {
		url, err := s.resolve(ctx, key)
		if err != nil {
			return ProductResponse{}, err
		}
		images = append(images, url)
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       images,
		Price:        p.UnitPrice(),
		Category:     p.Category,
		Trending:     p.Trending,
		Colors:       append([]string(nil), p.Colors...),
		Availability: p.Availability,
		Material:     p.Material,
		Dimensions:   p.Dimensions,
		Weight:       p.Weight,
		Type:         p.Type,
	}, nil
}

// ResolveImage resolves a single image key
func (s *Service) ResolveImage(ctx context.Context, key string) string {
	url, err := s.resolve(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to resolve image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func (s *Service) resolve(ctx context.Context, key string) (string, error) {
	if key == "" || s.images == nil {
		return key, nil
	}
	url, err := s.images.ResolveImage(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve image %q: %w", key, err)
	}
	return url, nil
}
