package models

// CartSummary 购物车汇总（每次读取时重新计算，不持久化）
type CartSummary struct {
	ItemCount   int    `json:"itemCount"`
	Subtotal    Money  `json:"subtotal"`
	TotalAmount Money  `json:"totalAmount"`
	Currency    string `json:"currency"`
}

// CartSnapshot 持久化快照，仅包含购物车与收藏夹
type CartSnapshot struct {
	Items         []LineItem      `json:"items"`
	WishlistItems []WishlistEntry `json:"wishlistItems"`
}

// Normalize 保证集合非 nil，序列化为 [] 而不是 null
func (s CartSnapshot) Normalize() CartSnapshot {
	if s.Items == nil {
		s.Items = []LineItem{}
	}
	if s.WishlistItems == nil {
		s.WishlistItems = []WishlistEntry{}
	}
	return s
}

// Cart 服务端购物车视图
type Cart struct {
	ID             string     `json:"id,omitempty"`
	UserID         string     `json:"userId,omitempty"`
	Items          []LineItem `json:"items"`
	Subtotal       Money      `json:"subtotal"`
	TaxAmount      Money      `json:"taxAmount"`
	ShippingAmount Money      `json:"shippingAmount"`
	DiscountAmount Money      `json:"discountAmount"`
	TotalAmount    Money      `json:"totalAmount"`
	Currency       string     `json:"currency"`
}

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	VariationID string `json:"variationId,omitempty"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	CartItemID string `json:"cartItemId,omitempty"`
	Quantity   int    `json:"quantity"`
}

// MergeCartRequest 合并购物车请求
type MergeCartRequest struct {
	Items []AddToCartRequest `json:"items"`
}

// AddToWishlistRequest 加入收藏请求
type AddToWishlistRequest struct {
	ProductID string `json:"productId"`
}
