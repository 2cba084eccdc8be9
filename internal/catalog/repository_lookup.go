package catalog

import (
	"context"
	"fmt"

	"github.com/marketplace-next/storefront/internal/repository"
)

// RepositoryLookup 从数据库读取商品
type RepositoryLookup struct {
	repo repository.ProductRepository
}

// NewRepositoryLookup 创建数据库商品查询
func NewRepositoryLookup(repo repository.ProductRepository) *RepositoryLookup {
	return &RepositoryLookup{repo: repo}
}

// Product 查询商品，已下架的商品返回 ErrProductInactive
func (l *RepositoryLookup) Product(ctx context.Context, productID string) (*Product, error) {
	product, err := l.repo.WithContext(ctx).GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	return FromModel(product), nil
}
