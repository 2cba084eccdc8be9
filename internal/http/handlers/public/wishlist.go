package public

import (
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取用户收藏夹
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	entries, err := h.WishlistService.List(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, entries)
}

// AddWishlistItem 收藏商品，重复收藏返回已有记录
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req models.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	entry, err := h.WishlistService.Add(c.Request.Context(), uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, entry)
}

// DeleteWishlistItem 取消收藏
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(c.Request.Context(), uid, c.Param("product_id")); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ClearWishlist 清空收藏夹
func (h *Handler) ClearWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.WishlistService.Clear(c.Request.Context(), uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
