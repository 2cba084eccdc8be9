package service

import (
	"context"

	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/store"
)

// CartBackend 进程内的远端购物车实现，绑定单个用户
type CartBackend struct {
	carts     *CartService
	wishlists *WishlistService
	userID    uint
}

var _ store.Backend = (*CartBackend)(nil)

// NewCartBackend 创建绑定用户的购物车后端
func NewCartBackend(carts *CartService, wishlists *WishlistService, userID uint) *CartBackend {
	return &CartBackend{carts: carts, wishlists: wishlists, userID: userID}
}

// GetCart 获取购物车
func (b *CartBackend) GetCart(ctx context.Context) (*models.Cart, error) {
	return b.carts.GetCart(ctx, b.userID)
}

// AddCartItem 加入购物车
func (b *CartBackend) AddCartItem(ctx context.Context, req models.AddToCartRequest) (*models.Cart, error) {
	return b.carts.AddItem(ctx, b.userID, req)
}

// UpdateCartItem 修改数量
func (b *CartBackend) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.Cart, error) {
	id, err := ParseCartItemID(itemID)
	if err != nil {
		return nil, err
	}
	return b.carts.UpdateItem(ctx, b.userID, id, quantity)
}

// RemoveCartItem 删除购物车项
func (b *CartBackend) RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error) {
	id, err := ParseCartItemID(itemID)
	if err != nil {
		return nil, err
	}
	return b.carts.RemoveItem(ctx, b.userID, id)
}

// ClearCart 清空购物车
func (b *CartBackend) ClearCart(ctx context.Context) error {
	return b.carts.Clear(ctx, b.userID)
}

// MergeCart 合并购物车
func (b *CartBackend) MergeCart(ctx context.Context, items []models.AddToCartRequest) (*models.Cart, error) {
	return b.carts.Merge(ctx, b.userID, items)
}

// GetWishlist 获取收藏夹
func (b *CartBackend) GetWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	return b.wishlists.List(ctx, b.userID)
}

// AddWishlistItem 收藏商品
func (b *CartBackend) AddWishlistItem(ctx context.Context, productID string) (*models.WishlistEntry, error) {
	return b.wishlists.Add(ctx, b.userID, productID)
}

// RemoveWishlistItem 取消收藏
func (b *CartBackend) RemoveWishlistItem(ctx context.Context, productID string) error {
	return b.wishlists.Remove(ctx, b.userID, productID)
}

// ClearWishlist 清空收藏夹
func (b *CartBackend) ClearWishlist(ctx context.Context) error {
	return b.wishlists.Clear(ctx, b.userID)
}
