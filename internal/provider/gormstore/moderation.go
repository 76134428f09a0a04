package gormstore

import (
	"context"
	"errors"

	"discovery-service/internal/model"

	"gorm.io/gorm"
)

// Moderation reads per-product demotion flags and report counts.
type Moderation struct {
	db *gorm.DB
}

// NewModeration creates a gorm-backed moderation provider.
func NewModeration(db *gorm.DB) *Moderation {
	return &Moderation{db: db}
}

// GetProductModerationStatus returns the demotion flag for a product. A
// product with no moderation record is not demoted.
func (m *Moderation) GetProductModerationStatus(ctx context.Context, productID uint) (model.ModerationStatus, error) {
	var record model.ProductModeration
	result := m.db.WithContext(ctx).Where("product_id = ?", productID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.ModerationStatus{}, nil
		}
		return model.ModerationStatus{}, result.Error
	}
	return model.ModerationStatus{IsDemoted: record.IsDemoted}, nil
}

// CountUnresolvedReports returns the number of open reports against a product.
func (m *Moderation) CountUnresolvedReports(ctx context.Context, productID uint) (int, error) {
	var count int64
	result := m.db.WithContext(ctx).
		Model(&model.ProductReport{}).
		Where("product_id = ? AND status = ?", productID, model.ReportStatusOpen).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}
