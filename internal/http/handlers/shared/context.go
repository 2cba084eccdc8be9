package shared

import (
	"github.com/marketplace-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		if v == 0 {
			RespondError(c, response.CodeUnauthorized, invalidKey, nil)
			return 0, false
		}
		return v, true
	case int:
		if v <= 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v <= 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// OptionalUserID 读取可选的用户 ID，游客返回 0。
func OptionalUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// UserToken 读取请求携带的原始令牌。
func UserToken(c *gin.Context) string {
	return c.GetString("user_token")
}

// GetSessionID 读取会话 ID，缺失时返回错误响应。
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		RespondError(c, response.CodeBadRequest, "error.session_required", nil)
		return "", false
	}
	return sessionID, true
}
