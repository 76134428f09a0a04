// Package gormstore implements the discovery provider interfaces on top of
// the marketplace's PostgreSQL database via GORM.
package gormstore

import (
	"context"

	"discovery-service/internal/model"

	"gorm.io/gorm"
)

// Catalog reads published products.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a gorm-backed catalog provider.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListPublishedProducts returns every published product with variants loaded.
func (c *Catalog) ListPublishedProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	result := c.db.WithContext(ctx).
		Preload("Variants").
		Where("is_published = ?", true).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}
