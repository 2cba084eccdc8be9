package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleSnapshot() models.CartSnapshot {
	addedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	price := models.NewMoney("19.99")
	return models.CartSnapshot{
		Items: []models.LineItem{
			{
				ID:        "li-1",
				ProductID: "p1",
				Product: models.LineItemProduct{
					ID:         "p1",
					Name:       "Mug",
					Slug:       "mug",
					Price:      price,
					Images:     []models.ProductImage{{ID: "i1", FileURL: "/mug.png", IsPrimary: true}},
					VendorName: "Acme",
				},
				Quantity:   2,
				UnitPrice:  price,
				TotalPrice: price.Mul(2),
				AddedAt:    addedAt,
			},
		},
		WishlistItems: []models.WishlistEntry{
			{
				ID:        "w-1",
				ProductID: "p2",
				Product:   models.WishlistProduct{ID: "p2", Name: "Cup", Price: models.NewMoney("5")},
				AddedAt:   addedAt,
			},
		},
	}
}

func mustMarshal(t *testing.T, v interface{}) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(raw)
}

func newGormKV(t *testing.T) *Gorm {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewGorm(repository.NewStorageRepository(db))
}

func newRedisKV(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "sf"), mr
}

func TestPersisterRoundTripAcrossBackends(t *testing.T) {
	redisKV, _ := newRedisKV(t)
	backends := map[string]KV{
		"memory": NewMemory(),
		"redis":  redisKV,
		"gorm":   newGormKV(t),
	}
	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := NewPersister(kv, "", logger.Nop())
			want := sampleSnapshot()
			if err := p.Save(ctx, want); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := p.Load(ctx)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if mustMarshal(t, got) != mustMarshal(t, want) {
				t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", mustMarshal(t, want), mustMarshal(t, got))
			}
		})
	}
}

func TestPersisterWritesOnlyCollections(t *testing.T) {
	kv := NewMemory()
	p := NewPersister(kv, "cart-storage", logger.Nop())
	if err := p.Save(context.Background(), models.CartSnapshot{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	raw, ok, _ := kv.Get(context.Background(), "cart-storage")
	if !ok {
		t.Fatalf("expected value under default key")
	}
	if string(raw) != `{"items":[],"wishlistItems":[]}` {
		t.Fatalf("unexpected persisted shape: %s", raw)
	}
}

func TestPersisterLoadMissingOrCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	p := NewPersister(kv, "cart-storage", logger.Nop())

	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("missing value should not fail: %v", err)
	}
	if len(got.Items) != 0 || len(got.WishlistItems) != 0 {
		t.Fatalf("expected empty collections")
	}

	_ = kv.Set(ctx, "cart-storage", []byte("{not json"))
	got, err = p.Load(ctx)
	if err != nil {
		t.Fatalf("corrupt value should not fail: %v", err)
	}
	if got.Items == nil || got.WishlistItems == nil || len(got.Items) != 0 {
		t.Fatalf("expected empty non-nil collections, got %+v", got)
	}
}

func TestPersisterLoadDropsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	raw := `{"items":[
		{"id":"a","productId":"p1","quantity":1,"unitPrice":1,"totalPrice":1,"addedAt":"2024-01-01T00:00:00Z","product":{"id":"p1"}},
		{"id":"b","productId":"p1","quantity":2,"unitPrice":1,"totalPrice":2,"addedAt":"2024-01-01T00:00:00Z","product":{"id":"p1"}},
		{"id":"c","productId":"p2","quantity":0,"unitPrice":1,"totalPrice":0,"addedAt":"2024-01-01T00:00:00Z","product":{"id":"p2"}}
	],"wishlistItems":[{"id":"w","productId":"p3"},{"id":"w2","productId":"p3"}],"isLoading":true}`
	_ = kv.Set(ctx, "cart-storage", []byte(raw))

	got, err := NewPersister(kv, "cart-storage", logger.Nop()).Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "a" {
		t.Fatalf("expected only first valid item, got %+v", got.Items)
	}
	if len(got.WishlistItems) != 1 {
		t.Fatalf("expected deduplicated wishlist, got %+v", got.WishlistItems)
	}
}

func TestRedisKVUsesPrefixAndKeys(t *testing.T) {
	kv, mr := newRedisKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "cart-storage:s1", []byte("{}")))
	require.NoError(t, kv.Set(ctx, "cart-storage:s2", []byte("{}")))
	assert.True(t, mr.Exists("sf:cart-storage:s1"))

	keys, err := kv.Keys(ctx, "cart-storage:", 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cart-storage:s1", "cart-storage:s2"}, keys)

	require.NoError(t, kv.Delete(ctx, "cart-storage:s1"))
	_, ok, err := kv.Get(ctx, "cart-storage:s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKVSurfacesBackendErrors(t *testing.T) {
	kv, mr := newRedisKV(t)
	mr.Close()

	_, _, err := kv.Get(context.Background(), "cart-storage")
	assert.Error(t, err)
	assert.Error(t, kv.Set(context.Background(), "cart-storage", []byte("{}")))
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	value := []byte("abc")
	_ = kv.Set(ctx, "k", value)
	value[0] = 'x'
	got, _, _ := kv.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("memory store must not alias caller slices, got %s", got)
	}
}
