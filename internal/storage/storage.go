package storage

import (
	"context"
	"errors"
)

// ErrStorageUnavailable 存储后端不可用
var ErrStorageUnavailable = errors.New("storage unavailable")

// KV 快照键值存储
type KV interface {
	// Get 读取键值，不存在时 ok 为 false
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister 可按前缀枚举键的存储
type Lister interface {
	Keys(ctx context.Context, prefix string, limit int) ([]string, error)
}
