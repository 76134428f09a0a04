package model

import "time"

// SellerFollow records that a user follows a seller's shop.
type SellerFollow struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"index:idx_follow_user_seller,unique;not null"`
	SellerID  uint      `json:"seller_id" gorm:"index:idx_follow_user_seller,unique;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItem records that a user wishlisted a product.
type WishlistItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"index:idx_wishlist_user_product,unique;not null"`
	ProductID uint      `json:"product_id" gorm:"index:idx_wishlist_user_product,unique;not null"`
	CreatedAt time.Time `json:"created_at"`
}
