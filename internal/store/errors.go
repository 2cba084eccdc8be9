package store

import "errors"

var (
	ErrInvalidProductID      = errors.New("product id is required")
	ErrInvalidQuantity       = errors.New("quantity must be between one and the line limit")
	ErrLineItemNotFound      = errors.New("line item not found")
	ErrWishlistEntryNotFound = errors.New("wishlist entry not found")
	ErrCatalogUnavailable    = errors.New("catalog lookup is not configured")
)
