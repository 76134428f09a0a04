package model

import (
	"time"

	"gorm.io/gorm"
)

// SlotEntityType says what kind of entity an ad slot pins.
type SlotEntityType string

const (
	SlotEntityProduct SlotEntityType = "product"
	SlotEntitySeller  SlotEntityType = "seller"
)

// AdSlot is an administrator-curated placement override: a promotional slot
// pinning specific entities above organic ranking. Expired slots may persist
// in storage but must never influence a current ranking.
type AdSlot struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	Slot       string         `json:"slot" gorm:"type:varchar(100);index;not null;comment:'Promotional slot identifier'"`
	EntityType SlotEntityType `json:"entity_type" gorm:"type:varchar(20);not null"`
	EntityIDs  []uint         `json:"entity_ids" gorm:"serializer:json"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty" gorm:"index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IsExpired reports whether the override has lapsed at the given instant.
// A slot without an expiry never expires.
func (a *AdSlot) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}
