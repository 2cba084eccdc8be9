package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/models"
)

// AddItem 加入购物车：同一 (商品, 规格) 累加数量，否则按目录数据生成快照新增
func (s *Store) AddItem(ctx context.Context, productID string, quantity int, variationID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	return s.finish("add_item", s.addItemLocked(ctx, productID, quantity, variationID))
}

func (s *Store) addItemLocked(ctx context.Context, productID string, quantity int, variationID string) error {
	productID = strings.TrimSpace(productID)
	variationID = strings.TrimSpace(variationID)
	if productID == "" {
		return ErrInvalidProductID
	}
	if quantity <= 0 || quantity > s.maxQty {
		return ErrInvalidQuantity
	}

	items, wishlist := s.current()
	now := s.now()
	if idx := indexItemByPair(items, productID, variationID); idx >= 0 {
		if items[idx].Quantity > s.maxQty-quantity {
			return ErrInvalidQuantity
		}
		items[idx] = items[idx].WithQuantity(items[idx].Quantity+quantity, now)
		return s.commit(ctx, items, wishlist)
	}

	item, err := s.newLineItem(ctx, productID, quantity, variationID)
	if err != nil {
		return err
	}
	items = append(items, item)
	return s.commit(ctx, items, wishlist)
}

func (s *Store) newLineItem(ctx context.Context, productID string, quantity int, variationID string) (models.LineItem, error) {
	if s.catalog == nil {
		return models.LineItem{}, ErrCatalogUnavailable
	}
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return models.LineItem{}, fmt.Errorf("lookup product %s: %w", productID, err)
	}
	var variation *catalog.Variation
	if variationID != "" {
		variation, err = product.Variation(variationID)
		if err != nil {
			return models.LineItem{}, fmt.Errorf("lookup variation %s: %w", variationID, err)
		}
	}
	unitPrice := catalog.UnitPrice(product, variation)
	item := models.LineItem{
		ID:         s.newID(),
		ProductID:  product.ID,
		Product:    product.LineItemProduct(),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(quantity),
		AddedAt:    s.now().UTC(),
	}
	if variation != nil {
		item.SelectedVariation = variation.SelectedVariation()
	}
	return item, nil
}

// UpdateItemQuantity 修改数量；数量小于等于 0 时等同于删除
func (s *Store) UpdateItemQuantity(ctx context.Context, lineItemID string, quantity int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if quantity <= 0 {
		s.begin()
		return s.finish("remove_item", s.removeItemLocked(ctx, lineItemID))
	}

	s.begin()
	if quantity > s.maxQty {
		return s.finish("update_item_quantity", ErrInvalidQuantity)
	}
	items, wishlist := s.current()
	idx := indexItemByID(items, lineItemID)
	if idx < 0 {
		return s.finish("update_item_quantity", fmt.Errorf("%w: %s", ErrLineItemNotFound, lineItemID))
	}
	items[idx] = items[idx].WithQuantity(quantity, s.now())
	return s.finish("update_item_quantity", s.commit(ctx, items, wishlist))
}

// RemoveItem 删除行项目，ID 不存在时不做任何事
func (s *Store) RemoveItem(ctx context.Context, lineItemID string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	return s.finish("remove_item", s.removeItemLocked(ctx, lineItemID))
}

func (s *Store) removeItemLocked(ctx context.Context, lineItemID string) error {
	items, wishlist := s.current()
	idx := indexItemByID(items, lineItemID)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.commit(ctx, items, wishlist)
}

// ClearCart 清空购物车
func (s *Store) ClearCart(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.begin()
	_, wishlist := s.current()
	return s.finish("clear_cart", s.commit(ctx, []models.LineItem{}, wishlist))
}
