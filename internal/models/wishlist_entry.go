package models

import "time"

// WishlistProduct 收藏时的商品快照
type WishlistProduct struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	Price          Money          `json:"price"`
	CompareAtPrice *Money         `json:"compareAtPrice,omitempty"`
	Images         []ProductImage `json:"images"`
	VendorName     string         `json:"vendorName"`
	Rating         float64        `json:"rating"`
	ReviewCount    int            `json:"reviewCount"`
}

// WishlistEntry 收藏夹条目
type WishlistEntry struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   WishlistProduct `json:"product"`
	AddedAt   time.Time       `json:"addedAt"`
}
