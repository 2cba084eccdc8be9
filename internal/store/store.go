package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State 购物车完整状态（含瞬时标记与汇总）
type State struct {
	Items         []models.LineItem      `json:"items"`
	WishlistItems []models.WishlistEntry `json:"wishlistItems"`
	Summary       models.CartSummary     `json:"summary"`
	IsLoading     bool                   `json:"isLoading"`
	Error         string                 `json:"error,omitempty"`
}

// Store 单个会话的购物车与收藏夹
// 变更操作串行执行，并在返回前写入快照
type Store struct {
	opMu sync.Mutex

	mu        sync.RWMutex
	items     []models.LineItem
	wishlist  []models.WishlistEntry
	isLoading bool
	errMsg    string
	lastSync  time.Time

	persister *storage.Persister
	catalog   catalog.Lookup
	backend   Backend
	currency  string
	maxQty    int
	now       func() time.Time
	newID     func() string
	log       *zap.SugaredLogger
}

// New 创建空的 Store
func New(opts Options) *Store {
	kv := opts.Storage
	if kv == nil {
		kv = storage.NewMemory()
	}
	currency := strings.ToUpper(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = constants.CurrencyDefault
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := opts.IDGen
	if idGen == nil {
		idGen = uuid.NewString
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("cart_store")
	}
	maxQty := opts.MaxQuantity
	if maxQty <= 0 {
		maxQty = constants.CartMaxLineQuantityDefault
	}
	key := opts.Key
	if key == "" {
		key = constants.CartStorageKeyDefault
	}
	return &Store{
		items:     []models.LineItem{},
		wishlist:  []models.WishlistEntry{},
		persister: storage.NewPersister(kv, key, log),
		catalog:   opts.Catalog,
		backend:   opts.Backend,
		currency:  currency,
		maxQty:    maxQty,
		now:       clock,
		newID:     idGen,
		log:       log.With("storage_key", key),
	}
}

// Load 创建 Store 并从存储中恢复快照
func Load(ctx context.Context, opts Options) (*Store, error) {
	s := New(opts)
	snapshot, err := s.persister.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = snapshot.Items
	s.wishlist = snapshot.WishlistItems
	s.mu.Unlock()
	return s, nil
}

// Key 返回快照存储键
func (s *Store) Key() string {
	return s.persister.Key
}

// Currency 返回结算币种
func (s *Store) Currency() string {
	return s.currency
}

// HasBackend 是否配置了远端同步
func (s *Store) HasBackend() bool {
	return s.backend != nil
}

// Items 返回购物车行项目副本
func (s *Store) Items() []models.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

// WishlistItems 返回收藏夹副本
func (s *Store) WishlistItems() []models.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWishlist(s.wishlist)
}

// IsLoading 是否有操作进行中
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Error 最近一次失败的错误信息
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// LastSync 最近一次成功同步的时间
func (s *Store) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

// Snapshot 返回待持久化的快照
func (s *Store) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CartSnapshot{
		Items:         cloneItems(s.items),
		WishlistItems: cloneWishlist(s.wishlist),
	}
}

// State 返回完整状态
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Items:         cloneItems(s.items),
		WishlistItems: cloneWishlist(s.wishlist),
		Summary:       Summarize(s.items, s.currency),
		IsLoading:     s.isLoading,
		Error:         s.errMsg,
	}
}

// CartSummary 重新计算购物车汇总
func (s *Store) CartSummary() models.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.items, s.currency)
}

// IsInCart 判断商品是否在购物车中；variationID 为空时匹配该商品的任意规格
func (s *Store) IsInCart(productID, variationID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ProductID != productID {
			continue
		}
		if variationID == "" || item.VariationID() == variationID {
			return true
		}
	}
	return false
}

// IsInWishlist 判断商品是否已收藏
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexWishlist(s.wishlist, productID) >= 0
}

// SetLoading 直接设置加载标记
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.isLoading = loading
	s.mu.Unlock()
}

// SetError 直接设置错误信息，空字符串表示清除
func (s *Store) SetError(message string) {
	s.mu.Lock()
	s.errMsg = message
	s.mu.Unlock()
}

// begin 标记操作开始并清除上一次的错误
func (s *Store) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.errMsg = ""
	s.mu.Unlock()
}

// finish 结束操作，err 非空时记录错误信息
func (s *Store) finish(op string, err error) error {
	s.mu.Lock()
	s.isLoading = false
	if err != nil {
		s.errMsg = err.Error()
	}
	s.mu.Unlock()
	if err != nil {
		s.log.Warnw("cart_store_operation_failed", "op", op, "error", err)
	}
	return err
}

// commit 先写入快照再替换内存状态，写入失败时内存保持不变
func (s *Store) commit(ctx context.Context, items []models.LineItem, wishlist []models.WishlistEntry) error {
	snapshot := models.CartSnapshot{Items: items, WishlistItems: wishlist}.Normalize()
	if err := s.persister.Save(ctx, snapshot); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = snapshot.Items
	s.wishlist = snapshot.WishlistItems
	s.mu.Unlock()
	return nil
}

func (s *Store) current() ([]models.LineItem, []models.WishlistEntry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items), cloneWishlist(s.wishlist)
}

func indexItemByPair(items []models.LineItem, productID, variationID string) int {
	for i := range items {
		if items[i].Matches(productID, variationID) {
			return i
		}
	}
	return -1
}

func indexItemByID(items []models.LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func indexWishlist(entries []models.WishlistEntry, productID string) int {
	for i := range entries {
		if entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}
