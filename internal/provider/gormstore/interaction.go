package gormstore

import (
	"context"

	"discovery-service/internal/model"

	"gorm.io/gorm"
)

// Interactions reads a viewer's follow and wishlist membership.
type Interactions struct {
	db *gorm.DB
}

// NewInteractions creates a gorm-backed interactions provider.
func NewInteractions(db *gorm.DB) *Interactions {
	return &Interactions{db: db}
}

// GetFollowedSellerIDs returns the IDs of sellers the viewer follows.
func (i *Interactions) GetFollowedSellerIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	var ids []uint
	result := i.db.WithContext(ctx).
		Model(&model.SellerFollow{}).
		Where("user_id = ?", viewerID).
		Pluck("seller_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// GetWishlistedProductIDs returns the IDs of products the viewer wishlisted.
func (i *Interactions) GetWishlistedProductIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	var ids []uint
	result := i.db.WithContext(ctx).
		Model(&model.WishlistItem{}).
		Where("user_id = ?", viewerID).
		Pluck("product_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
