package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID             string         `gorm:"primarykey;type:varchar(64)" json:"id"`                      // 主键
	VendorID       string         `gorm:"type:varchar(64);not null;index" json:"vendor_id"`           // 商家ID
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`                     // 商品名称
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	SKU            string         `gorm:"type:varchar(100);index" json:"sku"`                         // SKU 编码
	PriceAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`  // 售价
	CompareAtPrice *Money         `gorm:"type:decimal(20,2)" json:"compare_at_price,omitempty"`       // 划线价
	Images         ProductImages  `gorm:"type:json" json:"images"`                                    // 图片数组
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                   // 库存数量
	TrackInventory bool           `gorm:"not null;default:true" json:"track_inventory"`               // 是否跟踪库存
	Rating         float64        `gorm:"not null;default:0" json:"rating"`                           // 评分
	ReviewCount    int            `gorm:"not null;default:0" json:"review_count"`                     // 评价数
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Vendor     *Vendor            `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`     // 商家信息
	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
