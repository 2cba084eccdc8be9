package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariation 商品规格表
type ProductVariation struct {
	ID            string              `gorm:"primarykey;type:varchar(64)" json:"id"`            // 主键
	ProductID     string              `gorm:"type:varchar(64);not null;index" json:"product_id"` // 商品ID
	Name          string              `gorm:"type:varchar(255);not null" json:"name"`           // 规格名称
	SKU           string              `gorm:"type:varchar(100)" json:"sku"`                     // 规格 SKU
	PriceAmount   *Money              `gorm:"type:decimal(20,2)" json:"price_amount,omitempty"` // 规格价，为空时使用商品价
	StockQuantity int                 `gorm:"not null;default:0" json:"stock_quantity"`         // 规格库存
	Attributes    VariationAttributes `gorm:"type:json" json:"attributes"`                      // 规格属性
	IsActive      bool                `gorm:"default:true" json:"is_active"`                    // 是否启用
	SortOrder     int                 `gorm:"default:0" json:"sort_order"`                      // 排序
	CreatedAt     time.Time           `json:"created_at"`                                       // 创建时间
	UpdatedAt     time.Time           `json:"updated_at"`                                       // 更新时间
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (ProductVariation) TableName() string {
	return "product_variations"
}
