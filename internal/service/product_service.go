package service

import (
	"context"
	"errors"
	"strings"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/repository"
)

// ProductService 商品查询服务
type ProductService struct {
	repo   repository.ProductRepository
	lookup catalog.Lookup
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, lookup catalog.Lookup) *ProductService {
	return &ProductService{repo: repo, lookup: lookup}
}

// GetPublic 按 ID 或 slug 获取上架商品
func (s *ProductService) GetPublic(ctx context.Context, idOrSlug string) (*catalog.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, ErrNotFound
	}
	product, err := s.lookup.Product(ctx, idOrSlug)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, catalog.ErrProductNotFound) {
		return nil, mapCatalogNotFound(err)
	}

	bySlug, err := s.repo.WithContext(ctx).GetBySlug(idOrSlug)
	if err != nil {
		return nil, err
	}
	if bySlug == nil {
		return nil, ErrNotFound
	}
	product, err = s.lookup.Product(ctx, bySlug.ID)
	if err != nil {
		return nil, mapCatalogNotFound(err)
	}
	return product, nil
}

func mapCatalogNotFound(err error) error {
	if errors.Is(err, catalog.ErrProductNotFound) || errors.Is(err, catalog.ErrProductInactive) {
		return ErrNotFound
	}
	return err
}
