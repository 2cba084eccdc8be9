package repository

import (
	"testing"
	"time"

	"github.com/marketplace-next/storefront/internal/models"
)

func TestCartRepositoryUpsertKeepsOneRowPerPair(t *testing.T) {
	db := openRepositoryTestDB(t)
	seedRepositoryProduct(t, db, "p1")
	repo := NewCartRepository(db)

	first := &models.CartItem{UserID: 7, ProductID: "p1", VariationID: "p1-l", Quantity: 1}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	second := &models.CartItem{UserID: 7, ProductID: "p1", VariationID: "p1-l", Quantity: 4, UpdatedAt: time.Now()}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("upsert again failed: %v", err)
	}
	other := &models.CartItem{UserID: 7, ProductID: "p1", VariationID: "", Quantity: 2}
	if err := repo.Upsert(other); err != nil {
		t.Fatalf("upsert default variation failed: %v", err)
	}

	items, err := repo.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected overwritten quantity 4, got %d", items[0].Quantity)
	}
	if items[0].Product == nil || items[0].Product.Vendor == nil {
		t.Fatalf("product relations not preloaded")
	}
}

func TestCartRepositoryIncrementAccumulatesWithinLimit(t *testing.T) {
	db := openRepositoryTestDB(t)
	seedRepositoryProduct(t, db, "p1")
	repo := NewCartRepository(db)

	for i := 0; i < 3; i++ {
		now := time.Now()
		ok, err := repo.Increment(&models.CartItem{UserID: 5, ProductID: "p1", Quantity: 2, CreatedAt: now, UpdatedAt: now}, 7)
		if err != nil || !ok {
			t.Fatalf("increment %d failed: ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := repo.Increment(&models.CartItem{UserID: 5, ProductID: "p1", Quantity: 2, UpdatedAt: time.Now()}, 7)
	if err != nil {
		t.Fatalf("increment past limit errored: %v", err)
	}
	if ok {
		t.Fatalf("increment past limit should not be applied")
	}
	if ok, _ := repo.Increment(&models.CartItem{UserID: 5, ProductID: "p1", Quantity: 8}, 7); ok {
		t.Fatalf("quantity above limit should not be applied")
	}

	items, err := repo.ListByUser(5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 6 {
		t.Fatalf("expected one row with quantity 6, got %+v", items)
	}
}

func TestCartRepositoryDeleteAndClear(t *testing.T) {
	db := openRepositoryTestDB(t)
	seedRepositoryProduct(t, db, "p1")
	repo := NewCartRepository(db)

	item := &models.CartItem{UserID: 1, ProductID: "p1", Quantity: 1}
	if err := repo.Upsert(item); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if affected, err := repo.DeleteByID(2, item.ID); err != nil || affected != 0 {
		t.Fatalf("other user must not delete: affected=%d err=%v", affected, err)
	}
	if affected, err := repo.DeleteByID(1, item.ID); err != nil || affected != 1 {
		t.Fatalf("delete failed: affected=%d err=%v", affected, err)
	}
	// 硬删除后可再次加入同一组合
	if err := repo.Upsert(&models.CartItem{UserID: 1, ProductID: "p1", Quantity: 3}); err != nil {
		t.Fatalf("re-add after delete failed: %v", err)
	}
	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err := repo.ListByUser(1)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty cart, got %d err=%v", len(items), err)
	}
}

func TestWishlistRepositoryLifecycle(t *testing.T) {
	db := openRepositoryTestDB(t)
	seedRepositoryProduct(t, db, "p1")
	repo := NewWishlistRepository(db)

	if err := repo.Create(&models.WishlistItem{UserID: 3, ProductID: "p1"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	existing, err := repo.GetByProduct(3, "p1")
	if err != nil || existing == nil {
		t.Fatalf("expected wishlist row, got %v err=%v", existing, err)
	}
	items, err := repo.ListByUser(3)
	if err != nil || len(items) != 1 || items[0].Product == nil {
		t.Fatalf("list failed: %v err=%v", items, err)
	}
	if affected, err := repo.DeleteByProduct(3, "p1"); err != nil || affected != 1 {
		t.Fatalf("delete failed: affected=%d err=%v", affected, err)
	}
	if affected, err := repo.DeleteByProduct(3, "p1"); err != nil || affected != 0 {
		t.Fatalf("second delete should be noop: affected=%d err=%v", affected, err)
	}
}
