package repository

import (
	"context"
	"testing"
)

func TestStorageRepositoryUpsertOverwrites(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewStorageRepository(db).WithContext(context.Background())

	if err := repo.Upsert("cart-storage:s1", `{"items":[]}`); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert("cart-storage:s1", `{"items":[1]}`); err != nil {
		t.Fatalf("upsert overwrite failed: %v", err)
	}
	entry, err := repo.GetByKey("cart-storage:s1")
	if err != nil || entry == nil {
		t.Fatalf("get failed: %v %v", entry, err)
	}
	if entry.Value != `{"items":[1]}` {
		t.Fatalf("unexpected value: %s", entry.Value)
	}

	if err := repo.Delete("cart-storage:s1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	entry, err = repo.GetByKey("cart-storage:s1")
	if err != nil || entry != nil {
		t.Fatalf("expected nil after delete, got %v %v", entry, err)
	}
}

func TestStorageRepositoryListKeysByPrefix(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewStorageRepository(db)

	for _, key := range []string{"cart-storage:a", "cart-storage:b", "other:c", "cart-storage_x"} {
		if err := repo.Upsert(key, "{}"); err != nil {
			t.Fatalf("upsert %s failed: %v", key, err)
		}
	}
	keys, err := repo.ListKeys("cart-storage:", 0)
	if err != nil {
		t.Fatalf("list keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
	limited, err := repo.ListKeys("", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected limited list, got %v err=%v", limited, err)
	}
}
