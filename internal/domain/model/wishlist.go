package model

import "time"

// 1ユーザーにつきウィッシュリストは1つ。
type Wishlist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// ウィッシュリストの商品。(wishlist_id, product_id)は一意。
type WishlistItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WishlistID int64     `gorm:"not null;uniqueIndex:uq_wishlist_items_list_product" json:"wishlist_id"`
	ProductID  int64     `gorm:"not null;uniqueIndex:uq_wishlist_items_list_product" json:"product_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
