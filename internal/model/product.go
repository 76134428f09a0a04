package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents a published catalog listing owned by a seller.
// The discovery engine only ever reads products; catalog management and
// moderation actions mutate them through separate flows.
type Product struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	SellerID       uint           `json:"seller_id" gorm:"index;not null;comment:'Seller this product belongs to'"`
	Name           string         `json:"name" gorm:"type:varchar(255);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Category       string         `json:"category" gorm:"type:varchar(100);index"`
	MOQ            *int           `json:"moq,omitempty" gorm:"comment:'Minimum order quantity, seller default when unset'"`
	Rating         float64        `json:"rating" gorm:"default:0"`
	ReviewCount    int            `json:"review_count" gorm:"default:0"`
	SearchKeywords []string       `json:"search_keywords" gorm:"serializer:json"`
	ListedOnDirect bool           `json:"listed_on_direct" gorm:"default:false;comment:'Visible on the direct-to-consumer channel'"`
	IsPublished    bool           `json:"is_published" gorm:"default:false;index"`
	Variants       []PriceVariant `json:"variants" gorm:"foreignKey:ProductID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// PriceVariant represents one purchasable variant of a product. The first
// variant carries the product's base wholesale price.
type PriceVariant struct {
	ID             uint     `json:"id" gorm:"primarykey"`
	ProductID      uint     `json:"product_id" gorm:"index;not null"`
	Name           string   `json:"name" gorm:"type:varchar(100)"`
	WholesalePrice float64  `json:"wholesale_price" gorm:"not null"`
	RetailPrice    *float64 `json:"retail_price,omitempty" gorm:"comment:'Direct-channel price when listed there'"`
	Stock          int      `json:"stock" gorm:"default:0"`
	DirectStock    int      `json:"direct_stock" gorm:"default:0"`
}

// ComparisonPrice resolves the price used for range filtering. On the direct
// channel the retail price wins when one exists; otherwise the base wholesale
// price of the first variant. A product with no variants resolves to 0.
func (p *Product) ComparisonPrice(directChannel bool) float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	v := p.Variants[0]
	if directChannel && v.RetailPrice != nil {
		return *v.RetailPrice
	}
	return v.WholesalePrice
}

// MatchesQuery reports whether the product matches a free-text query, either
// by case-insensitive substring on the name or by membership of the lowercased
// query in the precomputed keyword set.
func (p *Product) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, kw := range p.SearchKeywords {
		if kw == q {
			return true
		}
	}
	return false
}
