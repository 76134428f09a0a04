package model

import (
	"time"

	"gorm.io/gorm"
)

// ModerationStatus is the per-product view the engine consumes.
type ModerationStatus struct {
	IsDemoted bool `json:"is_demoted"`
}

// ProductModeration stores the per-product demotion flag applied by
// moderators. Demotion heavily reduces rank without excluding the product.
type ProductModeration struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	ProductID uint           `json:"product_id" gorm:"uniqueIndex;not null"`
	IsDemoted bool           `json:"is_demoted" gorm:"default:false"`
	Reason    string         `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Report statuses for abuse/policy reports filed against a product.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// ProductReport is one abuse/policy report filed against a product.
// Unresolved reports each subtract from the product's rank.
type ProductReport struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	ProductID  uint           `json:"product_id" gorm:"index;not null"`
	ReporterID uint           `json:"reporter_id" gorm:"index"`
	Reason     string         `json:"reason" gorm:"type:text"`
	Status     string         `json:"status" gorm:"type:varchar(20);default:'open';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
