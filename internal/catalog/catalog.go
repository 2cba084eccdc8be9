package catalog

import (
	"context"
	"errors"

	"github.com/marketplace-next/storefront/internal/models"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductInactive 商品已下架
	ErrProductInactive = errors.New("product inactive")
	// ErrVariationNotFound 规格不存在或已停用
	ErrVariationNotFound = errors.New("variation not found")
)

// Lookup 商品目录查询
type Lookup interface {
	Product(ctx context.Context, productID string) (*Product, error)
}

// Variation 商品规格
type Variation struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	Price         *models.Money               `json:"price,omitempty"`
	SKU           string                      `json:"sku,omitempty"`
	StockQuantity int                         `json:"stockQuantity"`
	Attributes    []models.VariationAttribute `json:"attributes"`
	IsActive      bool                        `json:"isActive"`
}

// Product 商品目录视图
type Product struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Slug           string                `json:"slug"`
	Price          models.Money          `json:"price"`
	CompareAtPrice *models.Money         `json:"compareAtPrice,omitempty"`
	SKU            string                `json:"sku,omitempty"`
	Images         []models.ProductImage `json:"images"`
	VendorName     string                `json:"vendorName"`
	StockQuantity  int                   `json:"stockQuantity"`
	TrackInventory bool                  `json:"trackInventory"`
	Rating         float64               `json:"rating"`
	ReviewCount    int                   `json:"reviewCount"`
	IsActive       bool                  `json:"isActive"`
	Variations     []Variation           `json:"variations"`
}

// Variation 按 ID 查找启用中的规格
func (p *Product) Variation(variationID string) (*Variation, error) {
	for i := range p.Variations {
		if p.Variations[i].ID == variationID {
			if !p.Variations[i].IsActive {
				return nil, ErrVariationNotFound
			}
			v := p.Variations[i]
			return &v, nil
		}
	}
	return nil, ErrVariationNotFound
}

// LineItemProduct 生成购物车行项目的商品快照
func (p *Product) LineItemProduct() models.LineItemProduct {
	return models.LineItemProduct{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Price:          p.Price,
		CompareAtPrice: cloneMoney(p.CompareAtPrice),
		SKU:            p.SKU,
		Images:         cloneImages(p.Images),
		VendorName:     p.VendorName,
		StockQuantity:  p.StockQuantity,
		TrackInventory: p.TrackInventory,
	}
}

// WishlistProduct 生成收藏夹条目的商品快照
func (p *Product) WishlistProduct() models.WishlistProduct {
	return models.WishlistProduct{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Price:          p.Price,
		CompareAtPrice: cloneMoney(p.CompareAtPrice),
		Images:         cloneImages(p.Images),
		VendorName:     p.VendorName,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
	}
}

// SelectedVariation 生成规格快照
func (v *Variation) SelectedVariation() *models.SelectedVariation {
	attrs := make([]models.VariationAttribute, len(v.Attributes))
	copy(attrs, v.Attributes)
	return &models.SelectedVariation{
		ID:         v.ID,
		Name:       v.Name,
		Price:      cloneMoney(v.Price),
		SKU:        v.SKU,
		Attributes: attrs,
	}
}

// UnitPrice 计算单价：有规格价时取规格价，否则取商品价
func UnitPrice(product *Product, variation *Variation) models.Money {
	if variation != nil && variation.Price != nil {
		return *variation.Price
	}
	return product.Price
}

// FromModel 将数据库商品转换为目录视图
func FromModel(product *models.Product) *Product {
	if product == nil {
		return nil
	}
	out := &Product{
		ID:             product.ID,
		Name:           product.Name,
		Slug:           product.Slug,
		Price:          product.PriceAmount,
		CompareAtPrice: cloneMoney(product.CompareAtPrice),
		SKU:            product.SKU,
		Images:         cloneImages(product.Images),
		StockQuantity:  product.StockQuantity,
		TrackInventory: product.TrackInventory,
		Rating:         product.Rating,
		ReviewCount:    product.ReviewCount,
		IsActive:       product.IsActive,
		Variations:     make([]Variation, 0, len(product.Variations)),
	}
	if product.Vendor != nil {
		out.VendorName = product.Vendor.Name
	}
	for _, v := range product.Variations {
		attrs := make([]models.VariationAttribute, len(v.Attributes))
		copy(attrs, v.Attributes)
		out.Variations = append(out.Variations, Variation{
			ID:            v.ID,
			Name:          v.Name,
			Price:         cloneMoney(v.PriceAmount),
			SKU:           v.SKU,
			StockQuantity: v.StockQuantity,
			Attributes:    attrs,
			IsActive:      v.IsActive,
		})
	}
	return out
}

func cloneMoney(m *models.Money) *models.Money {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}

func cloneImages(images []models.ProductImage) []models.ProductImage {
	out := make([]models.ProductImage, len(images))
	copy(out, images)
	return out
}
