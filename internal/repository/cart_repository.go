package repository

import (
	"context"
	"errors"

	"github.com/marketplace-next/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var cartPairColumns = []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "variation_id"}}

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByID(userID, id uint) (*models.CartItem, error)
	GetByProduct(userID uint, productID, variationID string) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	Increment(item *models.CartItem, limit int) (bool, error)
	UpdateQuantity(userID, id uint, quantity int) error
	DeleteByID(userID, id uint) (int64, error)
	ClearByUser(userID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
	WithContext(ctx context.Context) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// WithContext 绑定请求上下文
func (r *GormCartRepository) WithContext(ctx context.Context) CartRepository {
	if ctx == nil {
		return r
	}
	return &GormCartRepository{db: r.db.WithContext(ctx)}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormCartRepository) withProduct() *gorm.DB {
	return r.db.Preload("Product").
		Preload("Product.Vendor").
		Preload("Product.Variations")
}

// ListByUser 获取用户购物车项（按加入顺序）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.withProduct().Where("user_id = ?", userID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 获取用户的指定购物车项，不存在时返回 nil
func (r *GormCartRepository) GetByID(userID, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.withProduct().Where("user_id = ? AND id = ?", userID, id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByProduct 按 (商品, 规格) 获取购物车项
func (r *GormCartRepository) GetByProduct(userID uint, productID, variationID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND variation_id = ?", userID, productID, variationID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或覆盖购物车项数量
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   cartPairColumns,
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(item).Error
}

// Increment 原子累加 (商品, 规格) 的数量，累加结果超过 limit 时不写入并返回 false
func (r *GormCartRepository) Increment(item *models.CartItem, limit int) (bool, error) {
	if item == nil {
		return false, nil
	}
	if item.Quantity > limit {
		return false, nil
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns: cartPairColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("cart_items.quantity <= ? - excluded.quantity", limit),
		}},
	}).Create(item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateQuantity 修改数量
func (r *GormCartRepository) UpdateQuantity(userID, id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("quantity", quantity).Error
}

// DeleteByID 删除购物车项，返回受影响行数
func (r *GormCartRepository) DeleteByID(userID, id uint) (int64, error) {
	result := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
