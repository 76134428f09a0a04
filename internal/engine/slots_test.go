package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"discovery-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSlotFiltersExpiredOverrides(t *testing.T) {
	f := newFixture()
	f.catalog.products = []model.Product{testProduct(1, 10, 100), testProduct(2, 10, 100)}
	f.placements.slots = []model.AdSlot{
		{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{1}, ExpiresAt: timePtr(time.Now().Add(-time.Minute))},
		{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{2}, ExpiresAt: timePtr(time.Now().Add(time.Hour))},
	}

	placement, err := f.build().ResolveSlot(context.Background(), "homepage-featured")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, placement.EntityIDs)
	assert.False(t, placement.Fallback)
}

func TestResolveSlotDropsMissingEntities(t *testing.T) {
	f := newFixture()
	f.catalog.products = []model.Product{testProduct(2, 10, 100)}
	f.placements.slots = []model.AdSlot{
		{Slot: "category-spotlight", EntityType: model.SlotEntityProduct, EntityIDs: []uint{1, 2, 3}},
	}

	placement, err := f.build().ResolveSlot(context.Background(), "category-spotlight")
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, placement.EntityIDs)
	assert.False(t, placement.Fallback)
}

func TestResolveSlotSellerEntities(t *testing.T) {
	f := newFixture()
	f.sellers.sellers = map[uint]model.Seller{10: testSeller(10)}
	f.placements.slots = []model.AdSlot{
		{Slot: "featured-sellers", EntityType: model.SlotEntitySeller, EntityIDs: []uint{10, 99}},
	}

	placement, err := f.build().ResolveSlot(context.Background(), "featured-sellers")
	require.NoError(t, err)
	assert.Equal(t, model.SlotEntitySeller, placement.EntityType)
	assert.Equal(t, []uint{10}, placement.EntityIDs)
}

func TestResolveSlotFallback(t *testing.T) {
	t.Run("no override for slot", func(t *testing.T) {
		f := newFixture()
		placement, err := f.build().ResolveSlot(context.Background(), "unknown-slot")
		require.NoError(t, err)
		assert.True(t, placement.Fallback)
		assert.Empty(t, placement.EntityIDs)
	})

	t.Run("all pins expired", func(t *testing.T) {
		f := newFixture()
		f.catalog.products = []model.Product{testProduct(1, 10, 100)}
		f.placements.slots = []model.AdSlot{
			{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{1}, ExpiresAt: timePtr(time.Now().Add(-time.Minute))},
		}

		placement, err := f.build().ResolveSlot(context.Background(), "homepage-featured")
		require.NoError(t, err)
		assert.True(t, placement.Fallback)
	})

	t.Run("all pinned entities gone", func(t *testing.T) {
		// The override document still exists, but the fallback decision
		// depends only on whether any valid pinned entity remains.
		f := newFixture()
		f.placements.slots = []model.AdSlot{
			{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{404}},
		}

		placement, err := f.build().ResolveSlot(context.Background(), "homepage-featured")
		require.NoError(t, err)
		assert.True(t, placement.Fallback)
	})
}

func TestResolveSlotDeduplicatesPins(t *testing.T) {
	f := newFixture()
	f.catalog.products = []model.Product{testProduct(1, 10, 100), testProduct(2, 10, 100)}
	f.placements.slots = []model.AdSlot{
		{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{2, 1}},
		{Slot: "homepage-featured", EntityType: model.SlotEntityProduct, EntityIDs: []uint{1}},
	}

	placement, err := f.build().ResolveSlot(context.Background(), "homepage-featured")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, placement.EntityIDs)
}

func TestResolveSlotProviderFailure(t *testing.T) {
	f := newFixture()
	f.placements.err = errors.New("store unreachable")

	_, err := f.build().ResolveSlot(context.Background(), "homepage-featured")
	assert.ErrorIs(t, err, ErrRankingUnavailable)
}
