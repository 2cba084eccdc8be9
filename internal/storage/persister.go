package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"

	"go.uber.org/zap"
)

// Persister 将购物车快照写入单个存储键
type Persister struct {
	KV     KV
	Key    string
	Logger *zap.SugaredLogger
}

// NewPersister 创建快照持久化器，key 为空时使用默认键
func NewPersister(kv KV, key string, log *zap.SugaredLogger) *Persister {
	if key == "" {
		key = constants.CartStorageKeyDefault
	}
	if log == nil {
		log = logger.S()
	}
	return &Persister{KV: kv, Key: key, Logger: log}
}

// Save 写入快照（仅包含 items 与 wishlistItems）
func (p *Persister) Save(ctx context.Context, snapshot models.CartSnapshot) error {
	if p == nil || p.KV == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot.Normalize())
	if err != nil {
		return fmt.Errorf("encode cart snapshot failed: %w", err)
	}
	if err := p.KV.Set(ctx, p.Key, payload); err != nil {
		return fmt.Errorf("%w: write cart snapshot failed: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Load 读取快照；缺失或损坏时返回空集合并记录告警，只有后端读取失败才返回错误
func (p *Persister) Load(ctx context.Context) (models.CartSnapshot, error) {
	empty := models.CartSnapshot{}.Normalize()
	if p == nil || p.KV == nil {
		return empty, nil
	}
	raw, ok, err := p.KV.Get(ctx, p.Key)
	if err != nil {
		return empty, fmt.Errorf("read cart snapshot failed: %w", err)
	}
	if !ok || len(raw) == 0 {
		return empty, nil
	}
	var snapshot models.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		p.log().Warnw("cart_snapshot_corrupt",
			"key", p.Key,
			"error", err,
		)
		return empty, nil
	}
	return sanitize(snapshot, p.log(), p.Key), nil
}

// Clear 删除快照
func (p *Persister) Clear(ctx context.Context) error {
	if p == nil || p.KV == nil {
		return nil
	}
	return p.KV.Delete(ctx, p.Key)
}

func (p *Persister) log() *zap.SugaredLogger {
	if p.Logger == nil {
		return logger.S()
	}
	return p.Logger
}

// sanitize 丢弃数量非法或重复的条目，保证加载后的集合满足唯一性约束
func sanitize(snapshot models.CartSnapshot, log *zap.SugaredLogger, key string) models.CartSnapshot {
	snapshot = snapshot.Normalize()
	items := make([]models.LineItem, 0, len(snapshot.Items))
	seenPairs := make(map[string]struct{}, len(snapshot.Items))
	dropped := 0
	for _, item := range snapshot.Items {
		pair := item.ProductID + "\x00" + item.VariationID()
		if item.ProductID == "" || item.Quantity <= 0 {
			dropped++
			continue
		}
		if _, dup := seenPairs[pair]; dup {
			dropped++
			continue
		}
		seenPairs[pair] = struct{}{}
		items = append(items, item)
	}
	wishlist := make([]models.WishlistEntry, 0, len(snapshot.WishlistItems))
	seenProducts := make(map[string]struct{}, len(snapshot.WishlistItems))
	for _, entry := range snapshot.WishlistItems {
		if entry.ProductID == "" {
			dropped++
			continue
		}
		if _, dup := seenProducts[entry.ProductID]; dup {
			dropped++
			continue
		}
		seenProducts[entry.ProductID] = struct{}{}
		wishlist = append(wishlist, entry)
	}
	if dropped > 0 {
		log.Warnw("cart_snapshot_entries_dropped", "key", key, "dropped", dropped)
	}
	return models.CartSnapshot{Items: items, WishlistItems: wishlist}
}
