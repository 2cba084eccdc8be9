package repository

import (
	"context"
	"errors"
	"time"

	"github.com/marketplace-next/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRepository 会话快照数据访问接口
type StorageRepository interface {
	GetByKey(key string) (*models.StorageEntry, error)
	Upsert(key, value string) error
	Delete(key string) error
	ListKeys(prefix string, limit int) ([]string, error)
	WithContext(ctx context.Context) StorageRepository
}

// GormStorageRepository GORM 实现
type GormStorageRepository struct {
	db *gorm.DB
}

// NewStorageRepository 创建快照仓库
func NewStorageRepository(db *gorm.DB) *GormStorageRepository {
	return &GormStorageRepository{db: db}
}

// WithContext 绑定请求上下文
func (r *GormStorageRepository) WithContext(ctx context.Context) StorageRepository {
	if ctx == nil {
		return r
	}
	return &GormStorageRepository{db: r.db.WithContext(ctx)}
}

// GetByKey 获取快照，不存在时返回 nil
func (r *GormStorageRepository) GetByKey(key string) (*models.StorageEntry, error) {
	var entry models.StorageEntry
	if err := r.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert 写入或覆盖快照
func (r *GormStorageRepository) Upsert(key, value string) error {
	entry := models.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete 删除快照
func (r *GormStorageRepository) Delete(key string) error {
	return r.db.Where("key = ?", key).Delete(&models.StorageEntry{}).Error
}

// ListKeys 按前缀列出快照键（最近写入优先）
func (r *GormStorageRepository) ListKeys(prefix string, limit int) ([]string, error) {
	query := r.db.Model(&models.StorageEntry{}).Order("updated_at desc")
	if prefix != "" {
		query = query.Where(prefixLikeCondition(r.db, "key"), escapeLike(prefix)+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var keys []string
	if err := query.Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
