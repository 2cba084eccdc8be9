package admin

import (
	"strings"

	handlershared "github.com/marketplace-next/storefront/internal/http/handlers/shared"
	"github.com/marketplace-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

var sessionErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.StoreErrorRules,
	handlershared.CatalogErrorRules,
)

// ListSessions 列出已持久化的会话
func (h *Handler) ListSessions(c *gin.Context) {
	limit := handlershared.NormalizeLimit(c.Query("limit"))
	ids, err := h.Sessions.Sessions(c.Request.Context(), limit)
	if err != nil {
		handlershared.RespondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.storage_failed")
		return
	}
	response.Success(c, gin.H{
		"sessions": ids,
		"loaded":   h.Sessions.Len(),
		"limit":    limit,
	})
}

// GetSessionCart 查看指定会话的购物车
func (h *Handler) GetSessionCart(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("session_id"))
	st, err := h.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		handlershared.RespondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.storage_failed")
		return
	}
	response.Success(c, gin.H{
		"sessionId": sessionID,
		"state":     st.State(),
		"lastSync":  st.LastSync(),
	})
}

// DeleteSessionCart 删除指定会话的购物车快照
func (h *Handler) DeleteSessionCart(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("session_id"))
	if err := h.Sessions.Discard(c.Request.Context(), sessionID); err != nil {
		handlershared.RespondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.storage_failed")
		return
	}
	requestLog(c).Infow("admin_session_cart_discarded",
		"session_id", sessionID,
		"operator_id", handlershared.OptionalUserID(c),
	)
	response.Success(c, gin.H{"deleted": true})
}

// InvalidateProductCache 清除商品目录缓存
func (h *Handler) InvalidateProductCache(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_required", nil)
		return
	}
	if h.ProductCache == nil {
		response.Success(c, gin.H{"invalidated": false})
		return
	}
	if err := h.ProductCache.Invalidate(c.Request.Context(), productID); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	requestLog(c).Infow("admin_product_cache_invalidated",
		"product_id", productID,
		"operator_id", handlershared.OptionalUserID(c),
	)
	response.Success(c, gin.H{"invalidated": true})
}
