package models

import "time"

// LineItemProduct 加入购物车时的商品快照
type LineItemProduct struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Price          Money          `json:"price"`
	CompareAtPrice *Money         `json:"compareAtPrice,omitempty"`
	SKU            string         `json:"sku,omitempty"`
	Images         []ProductImage `json:"images"`
	VendorName     string         `json:"vendorName"`
	StockQuantity  int            `json:"stockQuantity"`
	TrackInventory bool           `json:"trackInventory"`
}

// SelectedVariation 加入购物车时选择的规格快照
type SelectedVariation struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Price      *Money               `json:"price,omitempty"`
	SKU        string               `json:"sku,omitempty"`
	Attributes []VariationAttribute `json:"attributes"`
}

// LineItem 购物车行项目
// ID 为本地生成的标识，RemoteID 为同步后服务端分配的标识
type LineItem struct {
	ID                string             `json:"id"`
	RemoteID          string             `json:"remoteId,omitempty"`
	ProductID         string             `json:"productId"`
	Product           LineItemProduct    `json:"product"`
	Quantity          int                `json:"quantity"`
	SelectedVariation *SelectedVariation `json:"selectedVariation,omitempty"`
	UnitPrice         Money              `json:"unitPrice"`
	TotalPrice        Money              `json:"totalPrice"`
	AddedAt           time.Time          `json:"addedAt"`
	UpdatedAt         *time.Time         `json:"updatedAt,omitempty"`
}

// VariationID 返回选中规格ID，未选择时为空
func (i LineItem) VariationID() string {
	if i.SelectedVariation == nil {
		return ""
	}
	return i.SelectedVariation.ID
}

// Matches 判断是否为同一 (商品, 规格) 组合
func (i LineItem) Matches(productID, variationID string) bool {
	return i.ProductID == productID && i.VariationID() == variationID
}

// WithQuantity 返回更新数量并重算总价后的副本
func (i LineItem) WithQuantity(quantity int, now time.Time) LineItem {
	i.Quantity = quantity
	i.TotalPrice = i.UnitPrice.Mul(quantity)
	ts := now
	i.UpdatedAt = &ts
	return i
}

// LastModified 返回最近修改时间
func (i LineItem) LastModified() time.Time {
	if i.UpdatedAt != nil && !i.UpdatedAt.IsZero() {
		return *i.UpdatedAt
	}
	return i.AddedAt
}
