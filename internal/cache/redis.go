package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"

	"github.com/redis/go-redis/v9"
)

// Store 带键前缀的 Redis JSON 缓存
type Store struct {
	client *redis.Client
	prefix string
}

var defaultStore *Store

// New 创建缓存实例，client 为 nil 时所有操作均为空操作
func New(client *redis.Client, prefix string) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.RedisPrefixDefault
	}
	return &Store{client: client, prefix: prefix}
}

// InitRedis 初始化全局 Redis 客户端
func InitRedis(cfg *config.RedisConfig) (*Store, error) {
	if cfg == nil || !cfg.Enabled {
		defaultStore = nil
		return New(nil, ""), nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	defaultStore = New(client, cfg.Prefix)
	return defaultStore, nil
}

// Default 返回全局缓存实例
func Default() *Store {
	if defaultStore == nil {
		return New(nil, "")
	}
	return defaultStore
}

// Enabled 判断全局缓存是否启用
func Enabled() bool {
	return Default().Enabled()
}

// Client 获取全局 Redis 客户端
func Client() *redis.Client {
	return Default().Client()
}

// Enabled 判断缓存是否启用
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Client 获取 Redis 客户端
func (s *Store) Client() *redis.Client {
	if !s.Enabled() {
		return nil
	}
	return s.client
}

// Prefix 返回键前缀
func (s *Store) Prefix() string {
	if s == nil {
		return constants.RedisPrefixDefault
	}
	return s.prefix
}

// Key 拼接带前缀的完整键
func (s *Store) Key(parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, s.Prefix())
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		segments = append(segments, trimmed)
	}
	return strings.Join(segments, ":")
}

// GetJSON 获取 JSON 缓存
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	val, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(key), payload, ttl).Err()
}

// Del 删除缓存
func (s *Store) Del(ctx context.Context, key string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(ctx, s.Key(key)).Err()
}

// Close 关闭客户端
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
