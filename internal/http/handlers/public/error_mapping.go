package public

import (
	handlershared "github.com/marketplace-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedHandlerError

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var productErrorRules = handlershared.CatalogErrorRules

var sessionCartErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.StoreErrorRules,
	handlershared.CatalogErrorRules,
)

var sessionSyncErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.StoreErrorRules,
	handlershared.RemoteErrorRules,
	handlershared.CartServiceErrorRules,
)

var cartErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.CartServiceErrorRules,
	handlershared.CatalogErrorRules,
)
