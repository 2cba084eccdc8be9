package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/store"
)

var _ store.Backend = (*Client)(nil)

// GetCart GET /cart
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem POST /cart/items
func (c *Client) AddCartItem(ctx context.Context, req models.AddToCartRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/cart/items", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem PUT /cart/items/{id}
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := models.UpdateCartItemRequest{CartItemID: itemID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPut, "/cart/items/"+url.PathEscape(itemID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem DELETE /cart/items/{id}
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart DELETE /cart
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

// MergeCart POST /cart/merge
func (c *Client) MergeCart(ctx context.Context, items []models.AddToCartRequest) (*models.Cart, error) {
	if items == nil {
		items = []models.AddToCartRequest{}
	}
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/cart/merge", models.MergeCartRequest{Items: items}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetWishlist GET /wishlist
func (c *Client) GetWishlist(ctx context.Context) ([]models.WishlistEntry, error) {
	entries := []models.WishlistEntry{}
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddWishlistItem POST /wishlist
func (c *Client) AddWishlistItem(ctx context.Context, productID string) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	if err := c.do(ctx, http.MethodPost, "/wishlist", models.AddToWishlistRequest{ProductID: productID}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveWishlistItem DELETE /wishlist/{productId}
func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, nil)
}

// ClearWishlist DELETE /wishlist
func (c *Client) ClearWishlist(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/wishlist", nil, nil)
}
