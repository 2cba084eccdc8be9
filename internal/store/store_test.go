package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/storage"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	calls    int
}

func (f *fakeCatalog) Product(_ context.Context, productID string) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func newFakeCatalog() *fakeCatalog {
	v2Price := models.NewMoney("25.00")
	return &fakeCatalog{products: map[string]*catalog.Product{
		"P1": {
			ID: "P1", Name: "Tee", Slug: "tee", Price: models.NewMoney("10.00"), VendorName: "Acme",
			Images:   []models.ProductImage{{ID: "i1", FileURL: "/tee.png", IsPrimary: true}},
			IsActive: true, StockQuantity: 10, TrackInventory: true,
			Variations: []catalog.Variation{
				{ID: "V1", Name: "Small", IsActive: true},
				{ID: "V2", Name: "Large", Price: &v2Price, IsActive: true,
					Attributes: []models.VariationAttribute{{Name: "size", Value: "L"}}},
			},
		},
		"P2": {ID: "P2", Name: "Mug", Slug: "mug", Price: models.NewMoney("7.50"), VendorName: "Acme", IsActive: true, Rating: 4.5, ReviewCount: 12},
	}}
}

type failingKV struct {
	storage.KV
	failSet bool
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemory()
	}
	return New(Options{
		Storage: kv,
		Catalog: newFakeCatalog(),
		Clock:   newTestClock().Now,
		IDGen:   sequentialIDs("li"),
		Logger:  logger.Nop(),
	})
}

func snapshotJSON(t *testing.T, s models.CartSnapshot) string {
	t.Helper()
	raw, err := json.Marshal(s.Normalize())
	if err != nil {
		t.Fatalf("marshal snapshot failed: %v", err)
	}
	return string(raw)
}

func persistedJSON(t *testing.T, kv storage.KV) string {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), "cart-storage")
	if err != nil || !ok {
		t.Fatalf("expected persisted snapshot, ok=%v err=%v", ok, err)
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("decode persisted snapshot failed: %v", err)
	}
	return snapshotJSON(t, snap)
}

func TestAddItemNewProduct(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.AddItem(ctx, "P1", 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	summary := s.CartSummary()
	if summary.ItemCount != 1 || summary.Subtotal.String() != "10.00" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.TotalAmount.String() != summary.Subtotal.String() || summary.Currency != "USD" {
		t.Fatalf("total must equal subtotal in USD: %+v", summary)
	}
	items := s.Items()
	if items[0].Product.VendorName != "Acme" || items[0].Product.Slug != "tee" || len(items[0].Product.Images) != 1 {
		t.Fatalf("product snapshot not captured: %+v", items[0].Product)
	}
	if s.IsLoading() || s.Error() != "" {
		t.Fatalf("flags should be reset after success: loading=%v err=%q", s.IsLoading(), s.Error())
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_ = s.AddItem(ctx, "P1", 2, "")
	_ = s.AddItem(ctx, "P1", 3, "")

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
	if items[0].Quantity != 5 || items[0].TotalPrice.String() != "50.00" {
		t.Fatalf("expected qty 5 total 50.00, got %d %s", items[0].Quantity, items[0].TotalPrice)
	}
}

func TestAddItemSameProductThenAgain(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_ = s.AddItem(ctx, "P1", 1, "")
	_ = s.AddItem(ctx, "P1", 2, "")
	if got := s.CartSummary().ItemCount; got != 3 {
		t.Fatalf("expected itemCount 3, got %d", got)
	}
	if len(s.Items()) != 1 {
		t.Fatalf("expected a single line item")
	}
}

func TestAddItemDistinctVariations(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_ = s.AddItem(ctx, "P1", 1, "V1")
	_ = s.AddItem(ctx, "P1", 1, "V2")

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if s.CartSummary().ItemCount != 2 {
		t.Fatalf("expected itemCount 2")
	}
	if items[1].UnitPrice.String() != "25.00" || items[1].SelectedVariation == nil || items[1].SelectedVariation.Name != "Large" {
		t.Fatalf("variation price/snapshot not applied: %+v", items[1])
	}
	if items[0].UnitPrice.String() != "10.00" {
		t.Fatalf("variation without price should use product price, got %s", items[0].UnitPrice)
	}
}

func TestAddItemNeverDuplicatesPairs(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	sequence := []struct {
		product   string
		variation string
	}{
		{"P1", ""}, {"P1", "V1"}, {"P2", ""}, {"P1", ""}, {"P1", "V2"}, {"P1", "V1"}, {"P2", ""}, {"P1", "V2"},
	}
	for i, step := range sequence {
		if err := s.AddItem(ctx, step.product, i+1, step.variation); err != nil {
			t.Fatalf("add %v failed: %v", step, err)
		}
	}
	seen := map[string]bool{}
	total := 0
	for _, item := range s.Items() {
		key := item.ProductID + "/" + item.VariationID()
		if seen[key] {
			t.Fatalf("duplicate pair %s", key)
		}
		seen[key] = true
		total += item.Quantity
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct pairs, got %d", len(seen))
	}
	if total != 36 {
		t.Fatalf("expected total quantity 36, got %d", total)
	}
}

func TestAddItemValidationAndCatalogErrors(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "")
	before := persistedJSON(t, kv)

	cases := []struct {
		name      string
		product   string
		quantity  int
		variation string
		want      error
	}{
		{"empty product", " ", 1, "", ErrInvalidProductID},
		{"zero quantity", "P1", 0, "", ErrInvalidQuantity},
		{"negative quantity", "P1", -2, "", ErrInvalidQuantity},
		{"unknown product", "nope", 1, "", catalog.ErrProductNotFound},
		{"unknown variation", "P1", 1, "V9", catalog.ErrVariationNotFound},
	}
	for _, tc := range cases {
		err := s.AddItem(ctx, tc.product, tc.quantity, tc.variation)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if s.Error() == "" {
			t.Fatalf("%s: error flag should be set", tc.name)
		}
		if s.IsLoading() {
			t.Fatalf("%s: loading flag should be cleared", tc.name)
		}
		if len(s.Items()) != 1 || s.Items()[0].Quantity != 1 {
			t.Fatalf("%s: items must not change on failure", tc.name)
		}
	}
	if persistedJSON(t, kv) != before {
		t.Fatalf("snapshot must not change on failure")
	}

	if err := s.AddItem(ctx, "P2", 1, ""); err != nil {
		t.Fatalf("add after failure: %v", err)
	}
	if s.Error() != "" {
		t.Fatalf("successful operation should clear the previous error")
	}
}

func TestQuantityLineLimit(t *testing.T) {
	kv := storage.NewMemory()
	s := New(Options{
		Storage:     kv,
		Catalog:     newFakeCatalog(),
		MaxQuantity: 10,
		Clock:       newTestClock().Now,
		IDGen:       sequentialIDs("li"),
		Logger:      logger.Nop(),
	})
	ctx := context.Background()

	if err := s.AddItem(ctx, "P1", 11, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity above limit, got %v", err)
	}
	if err := s.AddItem(ctx, "P1", 6, ""); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := s.AddItem(ctx, "P1", 4, ""); err != nil {
		t.Fatalf("add up to the limit failed: %v", err)
	}
	before := persistedJSON(t, kv)
	if err := s.AddItem(ctx, "P1", 1, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity past limit, got %v", err)
	}
	if err := s.UpdateItemQuantity(ctx, s.Items()[0].ID, 11); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected update above limit to fail, got %v", err)
	}
	if persistedJSON(t, kv) != before || s.Items()[0].Quantity != 10 {
		t.Fatalf("rejected changes must not touch the cart")
	}
}

func TestAddItemQuantityDoesNotOverflow(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.AddItem(ctx, "P2", math.MaxInt, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if err := s.AddItem(ctx, "P2", constants.CartMaxLineQuantityDefault, ""); err != nil {
		t.Fatalf("add at the default limit failed: %v", err)
	}
	if err := s.AddItem(ctx, "P2", math.MaxInt, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity on wraparound, got %v", err)
	}
	if err := s.AddItem(ctx, "P2", 1, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity past default limit, got %v", err)
	}
	if got := s.Items()[0].Quantity; got != constants.CartMaxLineQuantityDefault {
		t.Fatalf("quantity changed to %d", got)
	}
}

func TestAddItemWithoutCatalog(t *testing.T) {
	s := New(Options{Logger: logger.Nop()})
	if err := s.AddItem(context.Background(), "P1", 1, ""); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected catalog unavailable, got %v", err)
	}
}

func TestUpdateItemQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		s := newTestStore(t, nil)
		ctx := context.Background()
		_ = s.AddItem(ctx, "P1", 5, "")
		id := s.Items()[0].ID

		if err := s.UpdateItemQuantity(ctx, id, qty); err != nil {
			t.Fatalf("update to %d failed: %v", qty, err)
		}
		if len(s.Items()) != 0 {
			t.Fatalf("update to %d should remove the item", qty)
		}
	}
}

func TestUpdateItemQuantityMatchesRemoveItem(t *testing.T) {
	ctx := context.Background()
	kvA, kvB := storage.NewMemory(), storage.NewMemory()
	a, b := newTestStore(t, kvA), newTestStore(t, kvB)
	for _, s := range []*Store{a, b} {
		_ = s.AddItem(ctx, "P1", 2, "")
		_ = s.AddItem(ctx, "P2", 1, "")
	}
	_ = a.UpdateItemQuantity(ctx, a.Items()[0].ID, 0)
	_ = b.RemoveItem(ctx, b.Items()[0].ID)
	if persistedJSON(t, kvA) != persistedJSON(t, kvB) {
		t.Fatalf("zero-quantity update must equal removal")
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P2", 1, "")
	id := s.Items()[0].ID

	if err := s.UpdateItemQuantity(ctx, id, 4); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	item := s.Items()[0]
	if item.Quantity != 4 || item.TotalPrice.String() != "30.00" {
		t.Fatalf("unexpected item after update: qty=%d total=%s", item.Quantity, item.TotalPrice)
	}
	if item.UpdatedAt == nil {
		t.Fatalf("updatedAt should be recorded")
	}

	err := s.UpdateItemQuantity(ctx, "missing", 3)
	if !errors.Is(err, ErrLineItemNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if s.Error() == "" {
		t.Fatalf("error flag should be set for unknown id")
	}
	if s.Items()[0].Quantity != 4 {
		t.Fatalf("items must not change for unknown id")
	}
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "")
	before := s.Items()

	if err := s.RemoveItem(ctx, "nonexistent"); err != nil {
		t.Fatalf("remove missing should not fail: %v", err)
	}
	if s.Error() != "" {
		t.Fatalf("remove missing should not set error")
	}
	after := s.Items()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("collection changed")
	}
}

func TestClearCartKeepsWishlist(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "")
	_ = s.AddToWishlist(ctx, "P2")

	if err := s.ClearCart(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(s.Items()) != 0 || len(s.WishlistItems()) != 1 {
		t.Fatalf("clear cart must only empty items")
	}
	if err := s.ClearWishlist(ctx); err != nil {
		t.Fatalf("clear wishlist failed: %v", err)
	}
	if len(s.WishlistItems()) != 0 {
		t.Fatalf("wishlist should be empty")
	}
}

func TestWishlistIdempotence(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_ = s.AddToWishlist(ctx, "P2")
	_ = s.AddToWishlist(ctx, "P2")

	entries := s.WishlistItems()
	if len(entries) != 1 || entries[0].ProductID != "P2" {
		t.Fatalf("expected exactly one entry for P2, got %+v", entries)
	}
	if entries[0].Product.Rating != 4.5 || entries[0].Product.ReviewCount != 12 {
		t.Fatalf("wishlist snapshot not captured: %+v", entries[0].Product)
	}
	if !s.IsInWishlist("P2") || s.IsInWishlist("P1") {
		t.Fatalf("unexpected wishlist membership")
	}

	if err := s.RemoveFromWishlist(ctx, "P1"); err != nil {
		t.Fatalf("remove absent should be noop: %v", err)
	}
	if err := s.RemoveFromWishlist(ctx, "P2"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if s.IsInWishlist("P2") {
		t.Fatalf("P2 should be removed")
	}

	if err := s.AddToWishlist(ctx, "nope"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if s.Error() == "" {
		t.Fatalf("wishlist failures should be captured")
	}
}

func TestMoveWishlistItemToCart(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.MoveWishlistItemToCart(ctx, "P2", 1); !errors.Is(err, ErrWishlistEntryNotFound) {
		t.Fatalf("expected wishlist entry not found, got %v", err)
	}
	_ = s.AddToWishlist(ctx, "P2")
	if err := s.MoveWishlistItemToCart(ctx, "P2", 2); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !s.IsInCart("P2", "") || !s.IsInWishlist("P2") {
		t.Fatalf("item should be in cart and stay in wishlist")
	}
	if s.Items()[0].Quantity != 2 {
		t.Fatalf("unexpected quantity %d", s.Items()[0].Quantity)
	}
}

func TestMoveWishlistItemToCartTrimsProductID(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddToWishlist(ctx, "P2")

	if err := s.MoveWishlistItemToCart(ctx, "  P2 ", 1); err != nil {
		t.Fatalf("move with padded id failed: %v", err)
	}
	if !s.IsInCart("P2", "") || len(s.Items()) != 1 {
		t.Fatalf("padded id should move the wishlisted product")
	}
}

func TestIsInCartVariationSemantics(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "V1")

	if !s.IsInCart("P1", "") {
		t.Fatalf("missing variation should match any variation")
	}
	if !s.IsInCart("P1", "V1") || s.IsInCart("P1", "V2") || s.IsInCart("P2", "") {
		t.Fatalf("unexpected cart membership")
	}
}

func TestSummaryMatchesItems(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 3, "V2")
	_ = s.AddItem(ctx, "P2", 2, "")
	_ = s.AddItem(ctx, "P1", 1, "")

	var count int
	expected := models.ZeroMoney()
	for _, item := range s.Items() {
		count += item.Quantity
		expected = expected.Add(item.UnitPrice.Mul(item.Quantity))
	}
	summary := s.CartSummary()
	if summary.ItemCount != count || summary.Subtotal.String() != expected.String() {
		t.Fatalf("summary mismatch: %+v vs count=%d subtotal=%s", summary, count, expected)
	}
	if summary.Subtotal.String() != "100.00" {
		t.Fatalf("expected subtotal 100.00, got %s", summary.Subtotal)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 2, "V2")
	_ = s.AddItem(ctx, "P2", 1, "")
	_ = s.AddToWishlist(ctx, "P1")
	_ = s.UpdateItemQuantity(ctx, s.Items()[1].ID, 3)
	before := snapshotJSON(t, s.Snapshot())

	if persistedJSON(t, kv) != before {
		t.Fatalf("persisted snapshot must equal in-memory state after each mutation")
	}

	reloaded, err := Load(ctx, Options{Storage: kv, Catalog: newFakeCatalog(), Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := snapshotJSON(t, reloaded.Snapshot()); got != before {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", before, got)
	}
	if len(reloaded.Items()) != 2 || reloaded.Items()[0].ProductID != "P1" {
		t.Fatalf("order must be preserved")
	}
}

func TestWriteThroughFailureRollsBack(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemory()}
	s := newTestStore(t, kv)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "")
	_ = s.AddToWishlist(ctx, "P2")
	before := snapshotJSON(t, s.Snapshot())

	kv.failSet = true
	ops := map[string]func() error{
		"add":            func() error { return s.AddItem(ctx, "P2", 1, "") },
		"increment":      func() error { return s.AddItem(ctx, "P1", 1, "") },
		"update":         func() error { return s.UpdateItemQuantity(ctx, s.Items()[0].ID, 9) },
		"remove":         func() error { return s.RemoveItem(ctx, s.Items()[0].ID) },
		"clear":          func() error { return s.ClearCart(ctx) },
		"wishlist clear": func() error { return s.ClearWishlist(ctx) },
	}
	for name, op := range ops {
		if err := op(); err == nil {
			t.Fatalf("%s: expected storage error", name)
		}
		if s.Error() == "" {
			t.Fatalf("%s: error flag should be set", name)
		}
		if got := snapshotJSON(t, s.Snapshot()); got != before {
			t.Fatalf("%s: in-memory state changed despite failed write", name)
		}
	}
}

func TestLoadEmptyAndCorruptStorage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s, err := Load(ctx, Options{Storage: kv, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("load empty failed: %v", err)
	}
	if len(s.Items()) != 0 || len(s.WishlistItems()) != 0 {
		t.Fatalf("expected empty store")
	}

	_ = kv.Set(ctx, "cart-storage", []byte("garbage"))
	s, err = Load(ctx, Options{Storage: kv, Logger: logger.Nop()})
	if err != nil {
		t.Fatalf("load corrupt failed: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("corrupt snapshot should load as empty")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	_ = s.AddItem(ctx, "P1", 1, "V2")
	_ = s.AddToWishlist(ctx, "P2")

	items := s.Items()
	items[0].Quantity = 99
	items[0].Product.Images[0].FileURL = "changed"
	items[0].SelectedVariation.Name = "changed"
	wishlist := s.WishlistItems()
	wishlist[0].ProductID = "changed"

	fresh := s.Items()[0]
	if fresh.Quantity != 1 || fresh.Product.Images[0].FileURL != "/tee.png" || fresh.SelectedVariation.Name != "Large" {
		t.Fatalf("accessor must not alias internal state: %+v", fresh)
	}
	if s.WishlistItems()[0].ProductID != "P2" {
		t.Fatalf("wishlist accessor must not alias internal state")
	}
}

func TestFlagSetters(t *testing.T) {
	s := newTestStore(t, nil)
	s.SetLoading(true)
	s.SetError("boom")
	state := s.State()
	if !state.IsLoading || state.Error != "boom" {
		t.Fatalf("unexpected flags: %+v", state)
	}
	s.SetError("")
	if s.Error() != "" {
		t.Fatalf("error should be cleared")
	}
}

func TestConcurrentAddsSerialize(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddItem(ctx, "P1", 1, "")
		}()
	}
	wg.Wait()
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 20 {
		t.Fatalf("expected one item with quantity 20, got %+v", items)
	}
}
