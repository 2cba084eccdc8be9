package repository

import (
	"context"
	"errors"

	"github.com/marketplace-next/storefront/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 收藏夹数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistItem, error)
	GetByProduct(userID uint, productID string) (*models.WishlistItem, error)
	Create(item *models.WishlistItem) error
	DeleteByProduct(userID uint, productID string) (int64, error)
	ClearByUser(userID uint) error
	WithContext(ctx context.Context) WishlistRepository
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithContext 绑定请求上下文
func (r *GormWishlistRepository) WithContext(ctx context.Context) WishlistRepository {
	if ctx == nil {
		return r
	}
	return &GormWishlistRepository{db: r.db.WithContext(ctx)}
}

// ListByUser 获取用户收藏
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").Preload("Product.Vendor").
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByProduct 获取指定商品的收藏记录
func (r *GormWishlistRepository) GetByProduct(userID uint, productID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建收藏记录
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// DeleteByProduct 删除收藏，返回受影响行数
func (r *GormWishlistRepository) DeleteByProduct(userID uint, productID string) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}

// ClearByUser 清空收藏夹
func (r *GormWishlistRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error
}
