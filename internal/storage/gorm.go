package storage

import (
	"context"

	"github.com/marketplace-next/storefront/internal/repository"
)

// Gorm 基于数据库表的快照存储
type Gorm struct {
	repo repository.StorageRepository
}

// NewGorm 创建数据库存储
func NewGorm(repo repository.StorageRepository) *Gorm {
	return &Gorm{repo: repo}
}

// Get 读取键值
func (g *Gorm) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if g.repo == nil {
		return nil, false, ErrStorageUnavailable
	}
	entry, err := g.repo.WithContext(ctx).GetByKey(key)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

// Set 写入键值
func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	if g.repo == nil {
		return ErrStorageUnavailable
	}
	return g.repo.WithContext(ctx).Upsert(key, string(value))
}

// Delete 删除键
func (g *Gorm) Delete(ctx context.Context, key string) error {
	if g.repo == nil {
		return ErrStorageUnavailable
	}
	return g.repo.WithContext(ctx).Delete(key)
}

// Keys 按前缀列出键
func (g *Gorm) Keys(ctx context.Context, prefix string, limit int) ([]string, error) {
	if g.repo == nil {
		return nil, ErrStorageUnavailable
	}
	return g.repo.WithContext(ctx).ListKeys(prefix, limit)
}
