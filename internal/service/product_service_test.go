package service

import (
	"context"
	"errors"
	"testing"

	"github.com/marketplace-next/storefront/internal/catalog"
)

func TestProductServiceGetPublic(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewProductService(f.products, catalog.NewRepositoryLookup(f.products))
	ctx := context.Background()

	byID, err := svc.GetPublic(ctx, "p1")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	bySlug, err := svc.GetPublic(ctx, "tee")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if byID.ID != bySlug.ID || len(bySlug.Variations) != 1 {
		t.Fatalf("expected same product, got %+v and %+v", byID, bySlug)
	}

	for _, key := range []string{"", "p3", "retired", "missing"} {
		if _, err := svc.GetPublic(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%q: expected not found, got %v", key, err)
		}
	}
}
