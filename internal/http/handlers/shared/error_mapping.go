package shared

import (
	"errors"

	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/remote"
	"github.com/marketplace-next/storefront/internal/service"
	"github.com/marketplace-next/storefront/internal/session"
	"github.com/marketplace-next/storefront/internal/storage"
	"github.com/marketplace-next/storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则顺序匹配错误，未命中时使用兜底响应并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedHandlerErrors 合并多组规则。
func ConcatMappedHandlerErrors(groups ...[]MappedHandlerError) []MappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// CatalogErrorRules 商品目录错误
var CatalogErrorRules = []MappedHandlerError{
	{Target: catalog.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: catalog.ErrProductInactive, Code: response.CodeBadRequest, Key: "error.product_inactive"},
	{Target: catalog.ErrVariationNotFound, Code: response.CodeBadRequest, Key: "error.variation_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

// StoreErrorRules 会话购物车错误
var StoreErrorRules = []MappedHandlerError{
	{Target: session.ErrInvalidSessionID, Code: response.CodeBadRequest, Key: "error.session_invalid"},
	{Target: store.ErrInvalidProductID, Code: response.CodeBadRequest, Key: "error.product_id_required"},
	{Target: store.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: store.ErrLineItemNotFound, Code: response.CodeNotFound, Key: "error.line_item_not_found"},
	{Target: store.ErrWishlistEntryNotFound, Code: response.CodeNotFound, Key: "error.wishlist_item_missing"},
	{Target: store.ErrCatalogUnavailable, Code: response.CodeServiceUnavailable, Key: "error.internal_error"},
	{Target: storage.ErrStorageUnavailable, Code: response.CodeServiceUnavailable, Key: "error.storage_failed"},
}

// CartServiceErrorRules 服务端购物车错误
var CartServiceErrorRules = []MappedHandlerError{
	{Target: service.ErrUserRequired, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrCartItemInvalid, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrWishlistItemInvalid, Code: response.CodeBadRequest, Key: "error.product_id_required"},
}

// RemoteErrorRules 远端同步错误
var RemoteErrorRules = []MappedHandlerError{
	{Target: remote.ErrRemoteUnavailable, Code: response.CodeServiceUnavailable, Key: "error.remote_unavailable"},
	{Target: remote.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: remote.ErrRequestFailed, Code: response.CodeBadGateway, Key: "error.sync_failed"},
	{Target: remote.ErrResponseInvalid, Code: response.CodeBadGateway, Key: "error.sync_failed"},
}
