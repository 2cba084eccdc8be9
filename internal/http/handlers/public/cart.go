package public

import (
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 获取用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车，同一商品规格累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.AddItem(c.Request.Context(), uid, req)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := service.ParseCartItemID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.cart_item_not_found", nil)
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.UpdateItem(c.Request.Context(), uid, itemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := service.ParseCartItemID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeNotFound, "error.cart_item_not_found", nil)
		return
	}
	cart, err := h.CartService.RemoveItem(c.Request.Context(), uid, itemID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(c.Request.Context(), uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// MergeCart 合并客户端购物车，同一商品规格取较大数量
func (h *Handler) MergeCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req models.MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.Merge(c.Request.Context(), uid, req.Items)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, cart)
}
