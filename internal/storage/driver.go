package storage

import (
	"fmt"
	"strings"

	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Open 按驱动名创建快照存储
func Open(driver string, client *redis.Client, prefix string, repo repository.StorageRepository) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case constants.StorageDriverMemory:
		return NewMemory(), nil
	case constants.StorageDriverRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis storage requires redis.enabled", ErrStorageUnavailable)
		}
		return NewRedis(client, prefix), nil
	case "", constants.StorageDriverDatabase:
		if repo == nil {
			return nil, fmt.Errorf("%w: database storage requires a repository", ErrStorageUnavailable)
		}
		return NewGorm(repo), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
