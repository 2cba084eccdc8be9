package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/repository"
)

// WishlistService 服务端收藏夹
type WishlistService struct {
	repo   repository.WishlistRepository
	lookup catalog.Lookup
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(repo repository.WishlistRepository, lookup catalog.Lookup) *WishlistService {
	return &WishlistService{repo: repo, lookup: lookup}
}

// List 获取用户收藏，已删除的商品不返回
func (s *WishlistService) List(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	rows, err := s.repo.WithContext(ctx).ListByUser(userID)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WishlistEntry, 0, len(rows))
	for _, row := range rows {
		if row.Product == nil {
			continue
		}
		entries = append(entries, toWishlistEntry(row))
	}
	return entries, nil
}

// Add 收藏商品，已收藏时返回已有记录
func (s *WishlistService) Add(ctx context.Context, userID uint, productID string) (*models.WishlistEntry, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrWishlistItemInvalid
	}
	repo := s.repo.WithContext(ctx)
	existing, err := repo.GetByProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	product, err := s.lookup.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = &models.WishlistItem{UserID: userID, ProductID: productID}
		if err := repo.Create(existing); err != nil {
			return nil, err
		}
	}
	return &models.WishlistEntry{
		ID:        strconv.FormatUint(uint64(existing.ID), 10),
		ProductID: productID,
		Product:   product.WishlistProduct(),
		AddedAt:   existing.CreatedAt.UTC(),
	}, nil
}

// Remove 取消收藏，未收藏时不报错
func (s *WishlistService) Remove(ctx context.Context, userID uint, productID string) error {
	if userID == 0 {
		return ErrUserRequired
	}
	_, err := s.repo.WithContext(ctx).DeleteByProduct(userID, strings.TrimSpace(productID))
	return err
}

// Clear 清空收藏夹
func (s *WishlistService) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserRequired
	}
	return s.repo.WithContext(ctx).ClearByUser(userID)
}

func toWishlistEntry(row models.WishlistItem) models.WishlistEntry {
	product := catalog.FromModel(row.Product)
	return models.WishlistEntry{
		ID:        strconv.FormatUint(uint64(row.ID), 10),
		ProductID: row.ProductID,
		Product:   product.WishlistProduct(),
		AddedAt:   row.CreatedAt.UTC(),
	}
}
