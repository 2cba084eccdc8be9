package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis 基于 Redis 的快照存储，键形如 <prefix>:<key>
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis 创建 Redis 存储
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: strings.TrimSpace(prefix)}
}

func (r *Redis) fullKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Get 读取键值
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.client == nil {
		return nil, false, ErrStorageUnavailable
	}
	value, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return value, true, nil
}

// Set 写入键值（不过期）
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if r.client == nil {
		return ErrStorageUnavailable
	}
	if err := r.client.Set(ctx, r.fullKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete 删除键
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return ErrStorageUnavailable
	}
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Keys 按前缀列出键（不含存储前缀）
func (r *Redis) Keys(ctx context.Context, prefix string, limit int) ([]string, error) {
	if r.client == nil {
		return nil, ErrStorageUnavailable
	}
	pattern := r.fullKey(prefix) + "*"
	keys := make([]string, 0)
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if r.prefix != "" {
			key = strings.TrimPrefix(key, r.prefix+":")
		}
		keys = append(keys, key)
		if limit > 0 && len(keys) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan failed: %w", err)
	}
	return keys, nil
}
