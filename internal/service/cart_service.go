package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/repository"
	"github.com/marketplace-next/storefront/internal/store"

	"gorm.io/gorm"
)

// CartService 服务端购物车
type CartService struct {
	cartRepo repository.CartRepository
	lookup   catalog.Lookup
	currency string
	maxQty   int
	now      func() time.Time
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, lookup catalog.Lookup, currency string) *CartService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	return &CartService{
		cartRepo: cartRepo,
		lookup:   lookup,
		currency: currency,
		maxQty:   constants.CartMaxLineQuantityDefault,
		now:      time.Now,
	}
}

// SetMaxLineQuantity 设置单行数量上限，n<=0 时保持默认值
func (s *CartService) SetMaxLineQuantity(n int) {
	if n > 0 {
		s.maxQty = n
	}
}

// GetCart 获取用户购物车，已下架或已删除的商品会被移出
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	repo := s.cartRepo.WithContext(ctx)
	rows, err := repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]models.LineItem, 0, len(rows))
	for _, row := range rows {
		item, ok := s.toLineItem(row)
		if !ok {
			if _, err := repo.DeleteByID(userID, row.ID); err != nil {
				return nil, err
			}
			logger.Infow("cart_item_pruned", "user_id", userID, "product_id", row.ProductID, "variation_id", row.VariationID)
			continue
		}
		items = append(items, item)
	}
	summary := store.Summarize(items, s.currency)
	return &models.Cart{
		ID:             "user-" + strconv.FormatUint(uint64(userID), 10),
		UserID:         strconv.FormatUint(uint64(userID), 10),
		Items:          items,
		Subtotal:       summary.Subtotal,
		TaxAmount:      models.ZeroMoney(),
		ShippingAmount: models.ZeroMoney(),
		DiscountAmount: models.ZeroMoney(),
		TotalAmount:    summary.TotalAmount,
		Currency:       s.currency,
	}, nil
}

// AddItem 加入购物车，同一 (商品, 规格) 原子累加数量，超过单行上限时拒绝
func (s *CartService) AddItem(ctx context.Context, userID uint, req models.AddToCartRequest) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	req, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	now := s.now()
	added, err := s.cartRepo.WithContext(ctx).Increment(&models.CartItem{
		UserID:      userID,
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, s.maxQty)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrCartItemInvalid
	}
	return s.GetCart(ctx, userID)
}

// UpdateItem 修改数量，数量小于等于 0 时删除
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}
	if quantity > s.maxQty {
		return nil, ErrCartItemInvalid
	}
	repo := s.cartRepo.WithContext(ctx)
	item, err := repo.GetByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := repo.Upsert(&models.CartItem{
		UserID:      userID,
		ProductID:   item.ProductID,
		VariationID: item.VariationID,
		Quantity:    quantity,
		UpdatedAt:   s.now(),
	}); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	rows, err := s.cartRepo.WithContext(ctx).DeleteByID(userID, itemID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.GetCart(ctx, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserRequired
	}
	return s.cartRepo.WithContext(ctx).ClearByUser(userID)
}

// Merge 合并客户端购物车：同一 (商品, 规格) 取较大数量，不可售的条目跳过
func (s *CartService) Merge(ctx context.Context, userID uint, reqs []models.AddToCartRequest) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	valid := make([]models.AddToCartRequest, 0, len(reqs))
	for _, req := range reqs {
		normalized, err := s.validate(ctx, req)
		if err != nil {
			if isUnavailable(err) || errors.Is(err, ErrCartItemInvalid) {
				logger.Warnw("cart_merge_item_skipped", "user_id", userID, "product_id", req.ProductID, "variation_id", req.VariationID, "error", err)
				continue
			}
			return nil, err
		}
		valid = append(valid, normalized)
	}

	repo := s.cartRepo.WithContext(ctx)
	now := s.now()
	err := repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		for _, req := range valid {
			existing, err := txRepo.GetByProduct(userID, req.ProductID, req.VariationID)
			if err != nil {
				return err
			}
			if existing != nil && existing.Quantity >= req.Quantity {
				continue
			}
			if err := txRepo.Upsert(&models.CartItem{
				UserID:      userID,
				ProductID:   req.ProductID,
				VariationID: req.VariationID,
				Quantity:    req.Quantity,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("cart_merged", "user_id", userID, "requested", len(reqs), "merged", len(valid))
	return s.GetCart(ctx, userID)
}

// validate 校验数量范围以及商品与规格是否可售
func (s *CartService) validate(ctx context.Context, req models.AddToCartRequest) (models.AddToCartRequest, error) {
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.VariationID = strings.TrimSpace(req.VariationID)
	if req.ProductID == "" || req.Quantity <= 0 || req.Quantity > s.maxQty {
		return req, ErrCartItemInvalid
	}
	product, err := s.lookup.Product(ctx, req.ProductID)
	if err != nil {
		return req, err
	}
	if req.VariationID != "" {
		if _, err := product.Variation(req.VariationID); err != nil {
			return req, err
		}
	}
	return req, nil
}

// toLineItem 将数据库购物车项转换为行项目，商品不可售时返回 false
func (s *CartService) toLineItem(row models.CartItem) (models.LineItem, bool) {
	if row.Product == nil || !row.Product.IsActive {
		return models.LineItem{}, false
	}
	product := catalog.FromModel(row.Product)
	var variation *catalog.Variation
	if row.VariationID != "" {
		v, err := product.Variation(row.VariationID)
		if err != nil {
			return models.LineItem{}, false
		}
		variation = v
	}
	unitPrice := catalog.UnitPrice(product, variation)
	updatedAt := row.UpdatedAt.UTC()
	item := models.LineItem{
		ID:         strconv.FormatUint(uint64(row.ID), 10),
		ProductID:  row.ProductID,
		Product:    product.LineItemProduct(),
		Quantity:   row.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(row.Quantity),
		AddedAt:    row.CreatedAt.UTC(),
		UpdatedAt:  &updatedAt,
	}
	if variation != nil {
		item.SelectedVariation = variation.SelectedVariation()
	}
	return item, true
}

// ParseCartItemID 解析购物车项 ID
func ParseCartItemID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrCartItemNotFound
	}
	return uint(id), nil
}

func isUnavailable(err error) bool {
	return errors.Is(err, catalog.ErrProductNotFound) ||
		errors.Is(err, catalog.ErrProductInactive) ||
		errors.Is(err, catalog.ErrVariationNotFound)
}
