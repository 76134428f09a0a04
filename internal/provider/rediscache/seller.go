package rediscache

import (
	"context"
	"fmt"
	"time"

	"discovery-service/internal/model"
	"discovery-service/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	allSellersKey = "discovery:sellers:all"
	planKeyFmt    = "discovery:plan:%d"
)

// cachedPlan wraps a plan lookup result so "seller has no plan" is cacheable
// distinctly from "not cached".
type cachedPlan struct {
	Plan *model.MarketingPlan `json:"plan"`
}

// SellerDirectory is a read-through cache over a seller directory provider.
type SellerDirectory struct {
	inner  provider.SellerDirectory
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewSellerDirectory wraps a seller directory with Redis caching.
func NewSellerDirectory(inner provider.SellerDirectory, client *redis.Client, ttl time.Duration, log *zap.Logger) *SellerDirectory {
	return &SellerDirectory{inner: inner, client: client, ttl: ttl, log: log}
}

// GetSellersByIDs serves the full-directory read from cache when possible.
// Point reads for specific IDs pass through to the wrapped provider.
func (s *SellerDirectory) GetSellersByIDs(ctx context.Context, ids []uint) (map[uint]model.Seller, error) {
	if len(ids) > 0 {
		return s.inner.GetSellersByIDs(ctx, ids)
	}

	var cached map[uint]model.Seller
	hit, err := getJSON(ctx, s.client, allSellersKey, &cached)
	if err != nil {
		s.log.Warn("seller cache read failed, falling through", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	sellers, err := s.inner.GetSellersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := setJSON(ctx, s.client, allSellersKey, sellers, s.ttl); err != nil {
		s.log.Warn("seller cache write failed", zap.Error(err))
	}
	return sellers, nil
}

// GetActiveMarketingPlan caches per-seller plan lookups, including the
// "no active plan" answer.
func (s *SellerDirectory) GetActiveMarketingPlan(ctx context.Context, sellerID uint) (*model.MarketingPlan, error) {
	key := fmt.Sprintf(planKeyFmt, sellerID)

	var cached cachedPlan
	hit, err := getJSON(ctx, s.client, key, &cached)
	if err != nil {
		s.log.Warn("plan cache read failed, falling through",
			zap.Uint("seller_id", sellerID), zap.Error(err))
	} else if hit {
		return cached.Plan, nil
	}

	plan, err := s.inner.GetActiveMarketingPlan(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if err := setJSON(ctx, s.client, key, cachedPlan{Plan: plan}, s.ttl); err != nil {
		s.log.Warn("plan cache write failed", zap.Uint("seller_id", sellerID), zap.Error(err))
	}
	return plan, nil
}
