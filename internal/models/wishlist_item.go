package models

import (
	"time"
)

// WishlistItem 服务端收藏项
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                                // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`                       // 用户ID
	ProductID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // 商品ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                             // 收藏时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
