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
	moderationKeyFmt = "discovery:moderation:%d"
	reportsKeyFmt    = "discovery:reports:%d"
)

// Moderation is a read-through cache over a moderation provider.
type Moderation struct {
	inner  provider.Moderation
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewModeration wraps a moderation provider with Redis caching.
func NewModeration(inner provider.Moderation, client *redis.Client, ttl time.Duration, log *zap.Logger) *Moderation {
	return &Moderation{inner: inner, client: client, ttl: ttl, log: log}
}

// GetProductModerationStatus caches per-product demotion flags.
func (m *Moderation) GetProductModerationStatus(ctx context.Context, productID uint) (model.ModerationStatus, error) {
	key := fmt.Sprintf(moderationKeyFmt, productID)

	var cached model.ModerationStatus
	hit, err := getJSON(ctx, m.client, key, &cached)
	if err != nil {
		m.log.Warn("moderation cache read failed, falling through",
			zap.Uint("product_id", productID), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	status, err := m.inner.GetProductModerationStatus(ctx, productID)
	if err != nil {
		return model.ModerationStatus{}, err
	}
	if err := setJSON(ctx, m.client, key, status, m.ttl); err != nil {
		m.log.Warn("moderation cache write failed", zap.Uint("product_id", productID), zap.Error(err))
	}
	return status, nil
}

// CountUnresolvedReports caches per-product open report counts.
func (m *Moderation) CountUnresolvedReports(ctx context.Context, productID uint) (int, error) {
	key := fmt.Sprintf(reportsKeyFmt, productID)

	var cached int
	hit, err := getJSON(ctx, m.client, key, &cached)
	if err != nil {
		m.log.Warn("report cache read failed, falling through",
			zap.Uint("product_id", productID), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	count, err := m.inner.CountUnresolvedReports(ctx, productID)
	if err != nil {
		return 0, err
	}
	if err := setJSON(ctx, m.client, key, count, m.ttl); err != nil {
		m.log.Warn("report cache write failed", zap.Uint("product_id", productID), zap.Error(err))
	}
	return count, nil
}
