// Package models holds the gorm row types for the catalog tables.
package models

import "github.com/decora/storefront/internal/domain/catalog"

// CategoryModel is a row of categories. Position keeps display order.
type CategoryModel struct {
	Slug        string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:128;not null"`
	Image       string `gorm:"size:512"`
	Description string `gorm:"type:text"`
	ItemsLabel  string `gorm:"column:items_label;size:64"`
	Position    int    `gorm:"not null;default:0"`
}

func (CategoryModel) TableName() string { return "categories" }

// ToDomain converts the row
func (m CategoryModel) ToDomain() catalog.Category {
	return catalog.Category{
		Name:        m.Name,
		Slug:        m.Slug,
		Image:       m.Image,
		Description: m.Description,
		Items:       m.ItemsLabel,
	}
}

// CategoryModelFromDomain builds a row at the given display position
func CategoryModelFromDomain(c catalog.Category, position int) CategoryModel {
	return CategoryModel{
		Slug:        c.Slug,
		Name:        c.Name,
		Image:       c.Image,
		Description: c.Description,
		ItemsLabel:  c.Items,
		Position:    position,
	}
}

// ProductModel is a row of products. Images and colors are stored as JSON
// arrays so the table works on both PostgreSQL and SQLite.
type ProductModel struct {
	ID           int64    `gorm:"primaryKey;autoIncrement:false"`
	Name         string   `gorm:"size:255;not null"`
	Description  string   `gorm:"type:text"`
	Images       []string `gorm:"serializer:json;type:text"`
	Price        int64    `gorm:"not null"`
	Category     string   `gorm:"size:128;not null;index"`
	Trending     bool     `gorm:"not null;default:false"`
	Colors       []string `gorm:"serializer:json;type:text"`
	Availability string   `gorm:"size:64"`
	Material     string   `gorm:"size:128"`
	Dimensions   string   `gorm:"size:128"`
	Weight       string   `gorm:"size:64"`
	Type         string   `gorm:"column:product_type;size:64"`
	Position     int      `gorm:"not null;default:0"`
}

func (ProductModel) TableName() string { return "products" }

// ToDomain converts the row
func (m ProductModel) ToDomain() catalog.Product {
	return catalog.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Images:       m.Images,
		Price:        m.Price,
		Category:     m.Category,
		Trending:     m.Trending,
		Colors:       m.Colors,
		Availability: m.Availability,
		Material:     m.Material,
		Dimensions:   m.Dimensions,
		Weight:       m.Weight,
		Type:         m.Type,
	}
}

// ProductModelFromDomain builds a row at the given featured position
func ProductModelFromDomain(p catalog.Product, position int) ProductModel {
	return ProductModel{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Price:        p.Price,
		Category:     p.Category,
		Trending:     p.Trending,
		Colors:       p.Colors,
		Availability: p.Availability,
		Material:     p.Material,
		Dimensions:   p.Dimensions,
		Weight:       p.Weight,
		Type:         p.Type,
		Position:     position,
	}
}
