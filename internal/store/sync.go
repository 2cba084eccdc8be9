package store

import (
	"context"
	"fmt"
	"time"

	"github.com/marketplace-next/storefront/internal/models"
)

// SyncWithServer 与远端购物车、收藏夹对账
// 本地变更已先行落盘；首次同步走合并接口，之后按 (商品, 规格) 逐项对比，
// 数量冲突时以最后修改者为准，价格与库存快照以远端为准。
// 未配置远端时只切换加载状态。任一远端调用失败时本地状态保持不变。
func (s *Store) SyncWithServer(ctx context.Context) error {
	return s.SyncWith(ctx, s.backend)
}

// SyncWith 使用指定的远端执行同步，backend 为空时等同于未配置远端
func (s *Store) SyncWith(ctx context.Context, backend Backend) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	if backend == nil {
		return s.finish("sync", nil)
	}

	items, wishlist := s.current()
	lastSync := s.LastSync()
	started := s.now()

	remoteCart, err := s.reconcileCart(ctx, backend, items, lastSync)
	if err != nil {
		return s.finish("sync", fmt.Errorf("sync cart: %w", err))
	}
	remoteWishlist, err := s.reconcileWishlist(ctx, backend, wishlist, lastSync)
	if err != nil {
		return s.finish("sync", fmt.Errorf("sync wishlist: %w", err))
	}

	nextItems := s.adoptRemoteItems(items, remoteCart.Items)
	nextWishlist := s.adoptRemoteWishlist(wishlist, remoteWishlist)
	if err := s.commit(ctx, nextItems, nextWishlist); err != nil {
		return s.finish("sync", err)
	}

	s.mu.Lock()
	s.lastSync = started
	s.mu.Unlock()
	s.log.Infow("cart_synced",
		"items", len(nextItems),
		"wishlist_items", len(nextWishlist),
		"first_sync", lastSync.IsZero(),
	)
	return s.finish("sync", nil)
}

func (s *Store) reconcileCart(ctx context.Context, backend Backend, local []models.LineItem, lastSync time.Time) (*models.Cart, error) {
	if lastSync.IsZero() {
		return backend.MergeCart(ctx, toAddRequests(local))
	}

	remote, err := backend.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range local {
		idx := indexItemByPair(remote.Items, item.ProductID, item.VariationID())
		if idx < 0 {
			// 已同步过且之后未改动，说明远端已删除
			if item.RemoteID != "" && !item.LastModified().After(lastSync) {
				continue
			}
			if _, err := backend.AddCartItem(ctx, toAddRequest(item)); err != nil {
				return nil, err
			}
			continue
		}
		r := remote.Items[idx]
		if r.Quantity != item.Quantity && item.LastModified().After(r.LastModified()) {
			if _, err := backend.UpdateCartItem(ctx, r.ID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range remote.Items {
		if indexItemByPair(local, r.ProductID, r.VariationID()) >= 0 {
			continue
		}
		// 上次同步后远端新增的保留，其余视为本地已删除
		if r.LastModified().After(lastSync) {
			continue
		}
		if _, err := backend.RemoveCartItem(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return backend.GetCart(ctx)
}

func (s *Store) reconcileWishlist(ctx context.Context, backend Backend, local []models.WishlistEntry, lastSync time.Time) ([]models.WishlistEntry, error) {
	remote, err := backend.GetWishlist(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range local {
		if indexWishlist(remote, entry.ProductID) >= 0 {
			continue
		}
		if !lastSync.IsZero() && !entry.AddedAt.After(lastSync) {
			continue
		}
		if _, err := backend.AddWishlistItem(ctx, entry.ProductID); err != nil {
			return nil, err
		}
	}
	if !lastSync.IsZero() {
		for _, r := range remote {
			if indexWishlist(local, r.ProductID) >= 0 || r.AddedAt.After(lastSync) {
				continue
			}
			if err := backend.RemoveWishlistItem(ctx, r.ProductID); err != nil {
				return nil, err
			}
		}
	}
	return backend.GetWishlist(ctx)
}

// adoptRemoteItems 以远端为准重建本地集合，保留本地 ID 与加入时间
func (s *Store) adoptRemoteItems(local, remote []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(remote))
	used := make([]bool, len(remote))
	for _, item := range local {
		idx := indexItemByPair(remote, item.ProductID, item.VariationID())
		if idx < 0 || used[idx] {
			continue
		}
		used[idx] = true
		if adopted, ok := adoptRemoteItem(remote[idx], item.ID, item.AddedAt); ok {
			out = append(out, adopted)
		}
	}
	for i, r := range remote {
		if used[i] {
			continue
		}
		if adopted, ok := adoptRemoteItem(r, s.newID(), r.AddedAt); ok {
			out = append(out, adopted)
		}
	}
	return out
}

func adoptRemoteItem(remote models.LineItem, localID string, addedAt time.Time) (models.LineItem, bool) {
	if remote.Quantity <= 0 || remote.ProductID == "" {
		return models.LineItem{}, false
	}
	item := cloneItem(remote)
	item.RemoteID = remote.ID
	item.ID = localID
	item.AddedAt = addedAt
	item.TotalPrice = item.UnitPrice.Mul(item.Quantity)
	return item, true
}

func (s *Store) adoptRemoteWishlist(local, remote []models.WishlistEntry) []models.WishlistEntry {
	out := make([]models.WishlistEntry, 0, len(remote))
	used := make(map[string]bool, len(remote))
	for _, entry := range local {
		idx := indexWishlist(remote, entry.ProductID)
		if idx < 0 {
			continue
		}
		adopted := remote[idx]
		adopted.ID = entry.ID
		adopted.AddedAt = entry.AddedAt
		out = append(out, adopted)
		used[entry.ProductID] = true
	}
	for _, r := range remote {
		if used[r.ProductID] || r.ProductID == "" {
			continue
		}
		r.ID = s.newID()
		out = append(out, r)
		used[r.ProductID] = true
	}
	return cloneWishlist(out)
}

func toAddRequests(items []models.LineItem) []models.AddToCartRequest {
	reqs := make([]models.AddToCartRequest, 0, len(items))
	for _, item := range items {
		reqs = append(reqs, toAddRequest(item))
	}
	return reqs
}

func toAddRequest(item models.LineItem) models.AddToCartRequest {
	return models.AddToCartRequest{
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		VariationID: item.VariationID(),
	}
}
