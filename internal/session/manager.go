package session

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/storage"
	"github.com/marketplace-next/storefront/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidSessionID 会话 ID 格式无效
var ErrInvalidSessionID = errors.New("invalid session id")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// Options 会话管理器依赖
type Options struct {
	Storage         storage.KV
	Catalog         catalog.Lookup
	StorageKey      string
	Currency        string
	MaxLineQuantity int
	IdleTTL         time.Duration
	Logger          *zap.SugaredLogger
	Clock           func() time.Time
}

type entry struct {
	store    *store.Store
	lastSeen time.Time
}

// Manager 按会话持有购物车 Store，首次访问时从存储恢复
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	loads   singleflight.Group
	opts    Options
	log     *zap.SugaredLogger
}

// NewManager 创建会话管理器
func NewManager(opts Options) *Manager {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if strings.TrimSpace(opts.StorageKey) == "" {
		opts.StorageKey = constants.CartStorageKeyDefault
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Named("session_manager")
	}
	return &Manager{
		entries: make(map[string]*entry),
		opts:    opts,
		log:     log,
	}
}

// ValidID 校验会话 ID
func ValidID(sessionID string) bool {
	return sessionIDPattern.MatchString(sessionID)
}

// StorageKey 返回会话快照的存储键
func (m *Manager) StorageKey(sessionID string) string {
	return m.opts.StorageKey + ":" + sessionID
}

// Get 获取会话的 Store，不在内存中时从存储加载
func (m *Manager) Get(ctx context.Context, sessionID string) (*store.Store, error) {
	if !ValidID(sessionID) {
		return nil, ErrInvalidSessionID
	}
	if st := m.touch(sessionID); st != nil {
		return st, nil
	}

	v, err, _ := m.loads.Do(sessionID, func() (interface{}, error) {
		if st := m.touch(sessionID); st != nil {
			return st, nil
		}
		st, err := store.Load(ctx, store.Options{
			Storage:     m.opts.Storage,
			Catalog:     m.opts.Catalog,
			Key:         m.StorageKey(sessionID),
			Currency:    m.opts.Currency,
			MaxQuantity: m.opts.MaxLineQuantity,
			Logger:      m.log.With("session_id", sessionID),
		})
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.entries[sessionID] = &entry{store: st, lastSeen: m.opts.Clock()}
		m.mu.Unlock()
		m.log.Debugw("session_store_loaded", "session_id", sessionID, "items", len(st.Items()))
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*store.Store), nil
}

func (m *Manager) touch(sessionID string) *store.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sessionID]
	if !ok {
		return nil
	}
	e.lastSeen = m.opts.Clock()
	return e.store
}

// Discard 删除会话在内存与存储中的快照
func (m *Manager) Discard(ctx context.Context, sessionID string) error {
	if !ValidID(sessionID) {
		return ErrInvalidSessionID
	}
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
	if err := m.opts.Storage.Delete(ctx, m.StorageKey(sessionID)); err != nil {
		return err
	}
	m.log.Infow("session_store_discarded", "session_id", sessionID)
	return nil
}

// Forget 仅移出内存中的会话，下次访问时重新从存储加载
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.entries, sessionID)
	m.mu.Unlock()
}

// Reload 丢弃内存中的 Store 并从存储重新加载
// 其他进程可能已写入更新的快照时使用
func (m *Manager) Reload(ctx context.Context, sessionID string) (*store.Store, error) {
	if !ValidID(sessionID) {
		return nil, ErrInvalidSessionID
	}
	m.Forget(sessionID)
	return m.Get(ctx, sessionID)
}

// Sessions 列出已持久化的会话 ID，存储不支持枚举时只返回内存中的会话
func (m *Manager) Sessions(ctx context.Context, limit int) ([]string, error) {
	lister, ok := m.opts.Storage.(storage.Lister)
	if !ok {
		m.mu.Lock()
		defer m.mu.Unlock()
		ids := make([]string, 0, len(m.entries))
		for id := range m.entries {
			if limit > 0 && len(ids) >= limit {
				break
			}
			ids = append(ids, id)
		}
		return ids, nil
	}
	prefix := m.opts.StorageKey + ":"
	keys, err := lister.Keys(ctx, prefix, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, prefix))
	}
	return ids, nil
}

// Len 内存中的会话数量
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// EvictIdle 移出空闲超时的会话，快照仍保留在存储中
func (m *Manager) EvictIdle() int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.opts.Clock().Add(-m.opts.IdleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			delete(m.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.log.Debugw("session_stores_evicted", "count", evicted, "remaining", len(m.entries))
	}
	return evicted
}

// Run 定期淘汰空闲会话，直到 ctx 结束
func (m *Manager) Run(ctx context.Context) {
	if m.opts.IdleTTL <= 0 {
		return
	}
	interval := m.opts.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}
