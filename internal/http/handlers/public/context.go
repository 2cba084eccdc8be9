package public

import (
	handlershared "github.com/marketplace-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.unauthorized", "error.internal_error")
}

func getSessionID(c *gin.Context) (string, bool) {
	return handlershared.GetSessionID(c)
}
