package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	var (
		withTokens bool
		tokenTTL   time.Duration
	)
	flag.BoolVar(&withTokens, "tokens", true, "打印演示用户令牌")
	flag.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "演示令牌有效期")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商家
	vendors := []models.Vendor{
		{ID: "vendor-northwind", Name: "Northwind Supply", Slug: "northwind", IsActive: true},
		{ID: "vendor-lumen", Name: "Lumen Studio", Slug: "lumen", IsActive: true},
	}
	for _, vendor := range vendors {
		vendor := vendor
		created, err := createIfMissing(models.DB, &vendor, vendor.ID)
		if err != nil {
			stdLog.Printf("Failed to create vendor %s: %v", vendor.Slug, err)
			continue
		}
		if created {
			stdLog.Printf("Created vendor: %s", vendor.Slug)
		} else {
			stdLog.Printf("Vendor already exists: %s", vendor.Slug)
		}
	}

	compareAt := models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99))
	products := []models.Product{
		{
			ID:             "prod-headphones",
			VendorID:       "vendor-northwind",
			Name:           "Wireless Headphones",
			Slug:           "wireless-headphones",
			SKU:            "NW-HP-01",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			CompareAtPrice: &compareAt,
			Images: models.ProductImages{
				{ID: "img-headphones-1", FileURL: "/uploads/headphones.jpg", AltText: "Wireless Headphones", IsPrimary: true},
			},
			StockQuantity:  25,
			TrackInventory: true,
			Rating:         4.6,
			ReviewCount:    128,
			IsActive:       true,
		},
		{
			ID:             "prod-desk-lamp",
			VendorID:       "vendor-lumen",
			Name:           "Desk Lamp",
			Slug:           "desk-lamp",
			SKU:            "LU-DL-02",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			StockQuantity:  40,
			TrackInventory: true,
			Rating:         4.2,
			ReviewCount:    37,
			IsActive:       true,
		},
		{
			ID:             "prod-tshirt",
			VendorID:       "vendor-lumen",
			Name:           "Organic T-Shirt",
			Slug:           "organic-tshirt",
			SKU:            "LU-TS-03",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(29.90)),
			StockQuantity:  0,
			TrackInventory: true,
			IsActive:       true,
		},
	}
	for _, product := range products {
		product := product
		created, err := createIfMissing(models.DB, &product, product.ID)
		if err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		if created {
			stdLog.Printf("Created product: %s", product.Slug)
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加规格，未设置规格价时沿用商品价
	largePrice := models.NewMoneyFromDecimal(decimal.NewFromFloat(32.90))
	variations := []models.ProductVariation{
		{
			ID:            "var-tshirt-m",
			ProductID:     "prod-tshirt",
			Name:          "Medium / Black",
			SKU:           "LU-TS-03-M-BLK",
			StockQuantity: 12,
			Attributes: models.VariationAttributes{
				{Name: "size", Value: "M"},
				{Name: "color", Value: "Black"},
			},
			IsActive:  true,
			SortOrder: 1,
		},
		{
			ID:            "var-tshirt-l",
			ProductID:     "prod-tshirt",
			Name:          "Large / Black",
			SKU:           "LU-TS-03-L-BLK",
			PriceAmount:   &largePrice,
			StockQuantity: 8,
			Attributes: models.VariationAttributes{
				{Name: "size", Value: "L"},
				{Name: "color", Value: "Black"},
			},
			IsActive:  true,
			SortOrder: 2,
		},
	}
	for _, variation := range variations {
		variation := variation
		created, err := createIfMissing(models.DB, &variation, variation.ID)
		if err != nil {
			stdLog.Printf("Failed to create variation %s: %v", variation.ID, err)
			continue
		}
		if created {
			stdLog.Printf("Created variation: %s", variation.ID)
		}
	}

	if !withTokens {
		return
	}
	tokens := service.NewTokenService(cfg.JWT)
	if !tokens.Enabled() {
		stdLog.Printf("JWT secret 未配置，跳过演示令牌")
		return
	}
	demoUsers := []struct {
		ID   uint
		Role string
	}{
		{ID: 1001, Role: "customer"},
		{ID: 2001, Role: "support"},
		{ID: 9001, Role: "admin"},
	}
	for _, user := range demoUsers {
		token, err := tokens.Generate(user.ID, user.Role, tokenTTL)
		if err != nil {
			stdLog.Printf("Failed to sign token for %s: %v", user.Role, err)
			continue
		}
		fmt.Printf("%-8s user_id=%d\n  Bearer %s\n", user.Role, user.ID, token)
	}
}

// createIfMissing 按主键判断是否已存在，不存在时创建
func createIfMissing(db *gorm.DB, value interface{}, id string) (bool, error) {
	err := db.Unscoped().Where("id = ?", id).First(value).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.Create(value).Error; err != nil {
		return false, err
	}
	return true, nil
}
