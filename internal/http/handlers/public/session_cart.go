package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/marketplace-next/storefront/internal/http/handlers/shared"
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/i18n"
	"github.com/marketplace-next/storefront/internal/queue"
	"github.com/marketplace-next/storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// SessionItemRequest 会话购物车加购请求，quantity 缺省为 1
type SessionItemRequest struct {
	ProductID   string `json:"productId"`
	Quantity    *int   `json:"quantity"`
	VariationID string `json:"variationId"`
}

// SessionQuantityRequest 修改数量请求
type SessionQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// SessionWishlistRequest 收藏请求
type SessionWishlistRequest struct {
	ProductID string `json:"productId"`
}

// SessionCartResponse 会话购物车响应
type SessionCartResponse struct {
	SessionID string `json:"sessionId"`
	store.State
}

func quantityOrDefault(quantity *int) int {
	if quantity == nil {
		return 1
	}
	return *quantity
}

func (h *Handler) sessionStore(c *gin.Context) (string, *store.Store, bool) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return "", nil, false
	}
	st, err := h.Sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.storage_failed")
		return "", nil, false
	}
	return sessionID, st, true
}

func respondSessionState(c *gin.Context, sessionID string, st *store.Store) {
	response.Success(c, SessionCartResponse{SessionID: sessionID, State: st.State()})
}

// GetSessionCart 获取会话购物车完整状态
func (h *Handler) GetSessionCart(c *gin.Context) {
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	respondSessionState(c, sessionID, st)
}

// GetSessionCartSummary 获取会话购物车汇总
func (h *Handler) GetSessionCartSummary(c *gin.Context) {
	_, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	response.Success(c, st.CartSummary())
}

// AddSessionCartItem 加入购物车
func (h *Handler) AddSessionCartItem(c *gin.Context) {
	var req SessionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(req.ProductID)
	variationID := strings.TrimSpace(req.VariationID)
	if err := st.AddItem(c.Request.Context(), productID, quantityOrDefault(req.Quantity), variationID); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// UpdateSessionCartItem 修改行项目数量，数量小于等于 0 时删除
func (h *Handler) UpdateSessionCartItem(c *gin.Context) {
	var req SessionQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
		return
	}
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.UpdateItemQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// DeleteSessionCartItem 删除行项目
func (h *Handler) DeleteSessionCartItem(c *gin.Context) {
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// ClearSessionCart 清空购物车（保留收藏夹）
func (h *Handler) ClearSessionCart(c *gin.Context) {
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.ClearCart(c.Request.Context()); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// SyncSessionCart 与用户的服务端购物车对账；async=true 时交给后台任务
func (h *Handler) SyncSessionCart(c *gin.Context) {
	userID := handlershared.OptionalUserID(c)
	if userID == 0 {
		respondError(c, response.CodeUnauthorized, "error.sync_not_configured", nil)
		return
	}
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}

	async, _ := strconv.ParseBool(c.Query("async"))
	if async && h.RemoteClient == nil {
		h.enqueueSessionSync(c, sessionID, userID)
		return
	}

	backend := h.BackendFor(userID, handlershared.UserToken(c))
	if err := st.SyncWith(c.Request.Context(), backend); err != nil {
		respondWithMappedError(c, err, sessionSyncErrorRules, response.CodeInternal, "error.sync_failed")
		return
	}
	respondSessionState(c, sessionID, st)
}

func (h *Handler) enqueueSessionSync(c *gin.Context, sessionID string, userID uint) {
	taskID, err := h.QueueClient.EnqueueCartSync(queue.CartSyncPayload{SessionID: sessionID, UserID: userID})
	if err != nil {
		if errors.Is(err, queue.ErrQueueDisabled) {
			respondError(c, response.CodeServiceUnavailable, "error.queue_unavailable", nil)
			return
		}
		respondError(c, response.CodeServiceUnavailable, "error.queue_unavailable", err)
		return
	}
	// 后台任务写入新快照后，下次访问重新加载
	h.Sessions.Forget(sessionID)
	handlershared.RequestLog(c).Infow("session_cart_sync_enqueued",
		"session_id", sessionID,
		"user_id", userID,
		"task_id", taskID,
	)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.sync_queued"), gin.H{
		"sessionId": sessionID,
		"queued":    true,
		"taskId":    taskID,
	})
}

// GetSessionWishlist 获取收藏夹
func (h *Handler) GetSessionWishlist(c *gin.Context) {
	_, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"wishlistItems": st.WishlistItems()})
}

// AddSessionWishlistItem 收藏商品
func (h *Handler) AddSessionWishlistItem(c *gin.Context) {
	var req SessionWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.AddToWishlist(c.Request.Context(), req.ProductID); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// DeleteSessionWishlistItem 取消收藏
func (h *Handler) DeleteSessionWishlistItem(c *gin.Context) {
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.RemoveFromWishlist(c.Request.Context(), c.Param("product_id")); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// ClearSessionWishlist 清空收藏夹
func (h *Handler) ClearSessionWishlist(c *gin.Context) {
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.ClearWishlist(c.Request.Context()); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}

// MoveSessionWishlistItemToCart 将收藏商品加入购物车
func (h *Handler) MoveSessionWishlistItemToCart(c *gin.Context) {
	var req SessionQuantityRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
	}
	sessionID, st, ok := h.sessionStore(c)
	if !ok {
		return
	}
	if err := st.MoveWishlistItemToCart(c.Request.Context(), c.Param("product_id"), quantityOrDefault(req.Quantity)); err != nil {
		respondWithMappedError(c, err, sessionCartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	respondSessionState(c, sessionID, st)
}
