package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/decora/storefront/internal/domain/catalog"
	"github.com/decora/storefront/internal/infrastructure/persistence/models"
)

// GormCatalogRepository reads and seeds the catalog tables
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// LoadProducts returns all products in featured order
func (r *GormCatalogRepository) LoadProducts(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	products := make([]catalog.Product, len(rows))
	for i, row := range rows {
		products[i] = row.ToDomain()
	}
	return products, nil
}

// LoadCategories returns all categories in display order
func (r *GormCatalogRepository) LoadCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("position, slug").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	categories := make([]catalog.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.ToDomain()
	}
	return categories, nil
}

// Seed upserts products and categories, keeping the given order as the
// display order. Running it twice leaves the tables unchanged.
func (r *GormCatalogRepository) Seed(ctx context.Context, products []catalog.Product, categories []catalog.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(categories) > 0 {
			rows := make([]models.CategoryModel, len(categories))
			for i, c := range categories {
				rows[i] = models.CategoryModelFromDomain(c, i)
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
		if len(products) > 0 {
			rows := make([]models.ProductModel, len(products))
			for i, p := range products {
				rows[i] = models.ProductModelFromDomain(p, i)
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}
		return nil
	})
}

var _ catalog.Source = (*GormCatalogRepository)(nil)
