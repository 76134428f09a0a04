package model

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus is the seller's position in the verification pipeline.
type VerificationStatus string

const (
	VerificationUnsubmitted    VerificationStatus = "unsubmitted"
	VerificationPendingLegal   VerificationStatus = "pending_legal"
	VerificationPendingAdmin   VerificationStatus = "pending_admin"
	VerificationActionRequired VerificationStatus = "action_required"
	VerificationVerified       VerificationStatus = "verified"
	VerificationRestricted     VerificationStatus = "restricted"
	VerificationSuspended      VerificationStatus = "suspended"
)

// SuspensionDetails carries the explicit suspension gate. Only this boolean
// excludes a seller's products from ranking; the Restricted verification
// status does not.
type SuspensionDetails struct {
	IsSuspended bool   `json:"is_suspended" gorm:"default:false"`
	Reason      string `json:"reason,omitempty" gorm:"type:text"`
}

// Seller represents the trust and plan context for a seller's products.
type Seller struct {
	ID                 uint               `json:"id" gorm:"primarykey"`
	Name               string             `json:"name" gorm:"type:varchar(100);index;not null"`
	Slug               string             `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	Location           string             `json:"location" gorm:"type:varchar(100)"`
	LeadTimeDays       int                `json:"lead_time_days" gorm:"default:0"`
	DefaultMOQ         int                `json:"default_moq" gorm:"default:1;comment:'Inherited by products without their own MOQ'"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(30);default:'unsubmitted'"`
	Suspension         SuspensionDetails  `json:"suspension" gorm:"embedded;embeddedPrefix:suspension_"`
	IsDemoted          bool               `json:"is_demoted" gorm:"default:false;comment:'Seller-level moderation demotion'"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`
}

// MarketingPlan represents a paid sponsorship plan attached to a seller.
// A plan whose expiry has passed contributes nothing to ranking.
type MarketingPlan struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	SellerID  uint      `json:"seller_id" gorm:"index;not null"`
	PlanID    string    `json:"plan_id" gorm:"type:varchar(50);not null;comment:'Tier identifier, e.g. basic/boost/surge'"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the plan is live at the given instant.
func (p *MarketingPlan) IsActive(now time.Time) bool {
	return p.ExpiresAt.After(now)
}
