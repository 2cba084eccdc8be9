package models

import (
	"time"

	"gorm.io/gorm"
)

// Vendor 商家表
type Vendor struct {
	ID        string         `gorm:"primarykey;type:varchar(64)" json:"id"`  // 主键
	Name      string         `gorm:"type:varchar(200);not null" json:"name"` // 商家名称
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`    // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}
