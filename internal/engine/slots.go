package engine

import (
	"context"
	"fmt"

	"discovery-service/internal/model"
)

// SlotPlacement is the resolved content of a promotional slot. Fallback is
// true when no valid pinned entity remains after expiry and existence
// filtering, in which case callers use their automatic default selection.
// The decision is purely "does any valid pinned entity remain", not whether
// an override record exists at all.
type SlotPlacement struct {
	Slot       string               `json:"slot"`
	EntityType model.SlotEntityType `json:"entity_type"`
	EntityIDs  []uint               `json:"entity_ids"`
	Fallback   bool                 `json:"fallback"`
}

// ResolveSlot resolves a named promotional slot to its surviving pinned
// entities: expired overrides are dropped, and pinned IDs that no longer
// resolve to an existing entity are filtered out.
func (e *Engine) ResolveSlot(ctx context.Context, slot string) (*SlotPlacement, error) {
	overrides, err := e.placements.ListPlacementOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing placement overrides: %v", ErrRankingUnavailable, err)
	}

	now := e.now()
	entityType := model.SlotEntityProduct
	var pinned []uint
	seen := make(map[uint]bool)
	for _, override := range overrides {
		if override.Slot != slot || override.IsExpired(now) {
			continue
		}
		entityType = override.EntityType
		for _, id := range override.EntityIDs {
			if !seen[id] {
				pinned = append(pinned, id)
				seen[id] = true
			}
		}
	}

	valid, err := e.filterExistingEntities(ctx, entityType, pinned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingUnavailable, err)
	}

	return &SlotPlacement{
		Slot:       slot,
		EntityType: entityType,
		EntityIDs:  valid,
		Fallback:   len(valid) == 0,
	}, nil
}

// filterExistingEntities keeps only pinned IDs that still resolve to a live
// entity, preserving pin order.
func (e *Engine) filterExistingEntities(ctx context.Context, entityType model.SlotEntityType, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	exists := make(map[uint]bool, len(ids))
	switch entityType {
	case model.SlotEntitySeller:
		sellers, err := e.sellers.GetSellersByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolving pinned sellers: %w", err)
		}
		for id := range sellers {
			exists[id] = true
		}
	default:
		products, err := e.catalog.ListPublishedProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving pinned products: %w", err)
		}
		for _, p := range products {
			exists[p.ID] = true
		}
	}

	var valid []uint
	for _, id := range ids {
		if exists[id] {
			valid = append(valid, id)
		}
	}
	return valid, nil
}
