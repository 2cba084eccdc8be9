package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/marketplace-next/storefront/internal/models"
)

// AddToWishlist 收藏商品，已收藏时不做任何事
func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	return s.finish("add_to_wishlist", s.addToWishlistLocked(ctx, productID))
}

func (s *Store) addToWishlistLocked(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrInvalidProductID
	}
	items, wishlist := s.current()
	if indexWishlist(wishlist, productID) >= 0 {
		return nil
	}
	if s.catalog == nil {
		return ErrCatalogUnavailable
	}
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return fmt.Errorf("lookup product %s: %w", productID, err)
	}
	wishlist = append(wishlist, models.WishlistEntry{
		ID:        s.newID(),
		ProductID: product.ID,
		Product:   product.WishlistProduct(),
		AddedAt:   s.now().UTC(),
	})
	return s.commit(ctx, items, wishlist)
}

// RemoveFromWishlist 取消收藏，未收藏时不做任何事
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	items, wishlist := s.current()
	idx := indexWishlist(wishlist, productID)
	if idx < 0 {
		return s.finish("remove_from_wishlist", nil)
	}
	wishlist = append(wishlist[:idx], wishlist[idx+1:]...)
	return s.finish("remove_from_wishlist", s.commit(ctx, items, wishlist))
}

// ClearWishlist 清空收藏夹
func (s *Store) ClearWishlist(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	items, _ := s.current()
	return s.finish("clear_wishlist", s.commit(ctx, items, []models.WishlistEntry{}))
}

// MoveWishlistItemToCart 将收藏的商品加入购物车，收藏记录保留
func (s *Store) MoveWishlistItemToCart(ctx context.Context, productID string, quantity int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	productID = strings.TrimSpace(productID)
	if !s.IsInWishlist(productID) {
		return s.finish("move_to_cart", fmt.Errorf("%w: %s", ErrWishlistEntryNotFound, productID))
	}
	return s.finish("move_to_cart", s.addItemLocked(ctx, productID, quantity, ""))
}
