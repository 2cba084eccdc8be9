package models

import "time"

// CartItem 服务端购物车项
type CartItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                                                  // 主键
	UserID      uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_variation" json:"user_id"`                   // 用户ID
	ProductID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product_variation" json:"product_id"` // 商品ID
	VariationID string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_cart_user_product_variation" json:"variation_id"` // 规格ID（空表示默认规格）
	Quantity    int       `gorm:"not null" json:"quantity"` // 数量
	CreatedAt   time.Time `gorm:"index" json:"created_at"`  // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`  // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
