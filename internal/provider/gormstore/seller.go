package gormstore

import (
	"context"
	"errors"
	"time"

	"discovery-service/internal/model"

	"gorm.io/gorm"
)

// SellerDirectory reads seller trust and plan metadata.
type SellerDirectory struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSellerDirectory creates a gorm-backed seller directory provider.
func NewSellerDirectory(db *gorm.DB) *SellerDirectory {
	return &SellerDirectory{db: db, now: time.Now}
}

// GetSellersByIDs returns sellers keyed by ID. An empty id list returns all
// sellers, which the engine uses for full-catalog ranking.
func (s *SellerDirectory) GetSellersByIDs(ctx context.Context, ids []uint) (map[uint]model.Seller, error) {
	var sellers []model.Seller
	query := s.db.WithContext(ctx)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if result := query.Find(&sellers); result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[uint]model.Seller, len(sellers))
	for _, seller := range sellers {
		byID[seller.ID] = seller
	}
	return byID, nil
}

// GetActiveMarketingPlan returns the seller's live plan, or nil when the
// seller has none or the plan has expired.
func (s *SellerDirectory) GetActiveMarketingPlan(ctx context.Context, sellerID uint) (*model.MarketingPlan, error) {
	var plan model.MarketingPlan
	result := s.db.WithContext(ctx).
		Where("seller_id = ? AND expires_at > ?", sellerID, s.now()).
		Order("expires_at DESC").
		First(&plan)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &plan, nil
}
