// Package provider defines the narrow read interfaces the discovery engine
// consumes. All marketplace data is owned elsewhere; the engine never writes.
package provider

import (
	"context"

	"discovery-service/internal/model"
)

// Catalog exposes the published product catalog.
type Catalog interface {
	// ListPublishedProducts returns every currently published product with
	// its price variants loaded.
	ListPublishedProducts(ctx context.Context) ([]model.Product, error)
}

// SellerDirectory exposes seller trust and plan metadata.
type SellerDirectory interface {
	// GetSellersByIDs returns the sellers for the given IDs, keyed by ID.
	// An empty id list returns all sellers. Missing IDs are simply absent
	// from the result, not an error.
	GetSellersByIDs(ctx context.Context, ids []uint) (map[uint]model.Seller, error)

	// GetActiveMarketingPlan returns the seller's live sponsorship plan, or
	// nil when the seller has none or the plan has expired.
	GetActiveMarketingPlan(ctx context.Context, sellerID uint) (*model.MarketingPlan, error)
}

// Interactions exposes a viewer's follow and wishlist membership.
type Interactions interface {
	GetFollowedSellerIDs(ctx context.Context, viewerID uint) ([]uint, error)
	GetWishlistedProductIDs(ctx context.Context, viewerID uint) ([]uint, error)
}

// Moderation exposes per-product demotion flags and report counts.
type Moderation interface {
	// GetProductModerationStatus returns the demotion flag for a product.
	// Products with no moderation record are simply not demoted.
	GetProductModerationStatus(ctx context.Context, productID uint) (model.ModerationStatus, error)

	// CountUnresolvedReports returns the number of open abuse/policy reports
	// against a product.
	CountUnresolvedReports(ctx context.Context, productID uint) (int, error)
}

// Placements exposes manual curation overrides (ad slots).
type Placements interface {
	// ListPlacementOverrides returns all stored overrides, expired ones
	// included. Callers filter expiry at resolution time.
	ListPlacementOverrides(ctx context.Context) ([]model.AdSlot, error)
}
