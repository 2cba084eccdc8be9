package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Cart.StorageKey != "cart-storage" {
		t.Fatalf("unexpected storage key: %s", cfg.Cart.StorageKey)
	}
	if cfg.Cart.Currency != "USD" {
		t.Fatalf("unexpected currency: %s", cfg.Cart.Currency)
	}
	if cfg.Cart.MaxLineQuantity != 999 {
		t.Fatalf("unexpected max line quantity: %d", cfg.Cart.MaxLineQuantity)
	}
	if cfg.Remote.Timeout().Milliseconds() != 5000 {
		t.Fatalf("unexpected remote timeout: %v", cfg.Remote.Timeout())
	}
	if cfg.Catalog.CacheTTL().Seconds() != 60 {
		t.Fatalf("unexpected catalog ttl: %v", cfg.Catalog.CacheTTL())
	}
}

func TestDecodeNormalizesDrivers(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
cart:
  storage_driver: " Redis "
  currency: "eur"
catalog:
  driver: REMOTE
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read config failed: %v", err)
	}

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Cart.StorageDriver != "redis" {
		t.Fatalf("storage driver not normalized: %q", cfg.Cart.StorageDriver)
	}
	if cfg.Cart.Currency != "EUR" {
		t.Fatalf("currency not normalized: %q", cfg.Cart.Currency)
	}
	if cfg.Catalog.Driver != "remote" {
		t.Fatalf("catalog driver not normalized: %q", cfg.Catalog.Driver)
	}
	if cfg.Cart.StorageKey != "cart-storage" {
		t.Fatalf("default storage key lost: %q", cfg.Cart.StorageKey)
	}
}
