package models

import "time"

// StorageEntry 会话快照表（键值对存储）
type StorageEntry struct {
	Key       string    `gorm:"primarykey;type:varchar(255)" json:"key"` // 存储键
	Value     string    `gorm:"type:text;not null" json:"value"`         // 序列化后的快照
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                 // 最近写入时间
}

// TableName 指定表名
func (StorageEntry) TableName() string {
	return "storage_entries"
}
