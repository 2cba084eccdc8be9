package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/marketplace-next/storefront/internal/catalog"
)

var _ catalog.Lookup = (*Client)(nil)

// Product GET /products/{id}，远端 404 映射为 catalog.ErrProductNotFound
func (c *Client) Product(ctx context.Context, productID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &product); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	if product.ID == "" {
		return nil, catalog.ErrProductNotFound
	}
	if !product.IsActive {
		return nil, catalog.ErrProductInactive
	}
	return &product, nil
}
