package gormstore

import (
	"context"

	"discovery-service/internal/model"

	"gorm.io/gorm"
)

// Placements reads manual curation overrides.
type Placements struct {
	db *gorm.DB
}

// NewPlacements creates a gorm-backed placements provider.
func NewPlacements(db *gorm.DB) *Placements {
	return &Placements{db: db}
}

// ListPlacementOverrides returns all stored overrides, expired ones included.
func (p *Placements) ListPlacementOverrides(ctx context.Context) ([]model.AdSlot, error) {
	var slots []model.AdSlot
	if result := p.db.WithContext(ctx).Find(&slots); result.Error != nil {
		return nil, result.Error
	}
	return slots, nil
}
