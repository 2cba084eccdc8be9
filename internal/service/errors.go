package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrUserRequired 缺少用户身份
	ErrUserRequired = errors.New("user required")
	// ErrCartItemInvalid 购物车项参数无效
	ErrCartItemInvalid = errors.New("cart item invalid")
	// ErrCartItemNotFound 购物车项不存在
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrWishlistItemInvalid 收藏参数无效
	ErrWishlistItemInvalid = errors.New("wishlist item invalid")
)
