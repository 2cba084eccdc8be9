package store

import (
	"time"

	"github.com/marketplace-next/storefront/internal/models"
)

func cloneItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i := range items {
		out[i] = cloneItem(items[i])
	}
	return out
}

func cloneItem(item models.LineItem) models.LineItem {
	item.Product.CompareAtPrice = cloneMoney(item.Product.CompareAtPrice)
	item.Product.Images = cloneImages(item.Product.Images)
	if item.SelectedVariation != nil {
		v := *item.SelectedVariation
		v.Price = cloneMoney(v.Price)
		if v.Attributes != nil {
			v.Attributes = append(make([]models.VariationAttribute, 0, len(v.Attributes)), v.Attributes...)
		}
		item.SelectedVariation = &v
	}
	item.UpdatedAt = cloneTime(item.UpdatedAt)
	return item
}

func cloneWishlist(entries []models.WishlistEntry) []models.WishlistEntry {
	out := make([]models.WishlistEntry, len(entries))
	for i := range entries {
		entry := entries[i]
		entry.Product.CompareAtPrice = cloneMoney(entry.Product.CompareAtPrice)
		entry.Product.Images = cloneImages(entry.Product.Images)
		out[i] = entry
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
	if images == nil {
		return nil
	}
	return append(make([]models.ProductImage, 0, len(images)), images...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
