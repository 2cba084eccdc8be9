package store

import "github.com/marketplace-next/storefront/internal/models"

// Summarize 从行项目重新计算汇总
func Summarize(items []models.LineItem, currency string) models.CartSummary {
	summary := models.CartSummary{
		Subtotal: models.ZeroMoney(),
		Currency: currency,
	}
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.Subtotal = summary.Subtotal.Add(item.UnitPrice.Mul(item.Quantity))
	}
	// 税费与运费不在购物车阶段计算
	summary.TotalAmount = summary.Subtotal
	return summary
}
