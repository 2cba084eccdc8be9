package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/authz"
	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/i18n"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/service"
	"github.com/marketplace-next/storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// 上下文键
const (
	userIDContextKey    = "user_id"
	userRoleContextKey  = "user_role"
	userTokenContextKey = "user_token"
	sessionContextKey   = "session_id"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 读取 Authorization 头，present 表示请求携带了该头
func bearerToken(c *gin.Context) (token string, present bool, ok bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer" && strings.TrimSpace(parts[1]) != "") {
		return "", true, false
	}
	return strings.TrimSpace(parts[1]), true, true
}

func authenticate(c *gin.Context, tokens *service.TokenService, required bool) bool {
	if !tokens.Enabled() {
		if !required {
			return true
		}
		abortUnauthorized(c, "error.jwt_secret_missing")
		return false
	}
	raw, present, ok := bearerToken(c)
	if !present {
		if required {
			abortUnauthorized(c, "error.auth_header_missing")
			return false
		}
		return true
	}
	if !ok {
		abortUnauthorized(c, "error.auth_header_invalid")
		return false
	}
	claims, err := tokens.Parse(raw)
	if err != nil {
		abortUnauthorized(c, "error.token_invalid")
		return false
	}
	c.Set(userIDContextKey, claims.UserID)
	c.Set(userRoleContextKey, claims.Role)
	c.Set(userTokenContextKey, raw)
	return true
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens, true) {
			return
		}
		c.Next()
	}
}

// OptionalUserJWTMiddleware 游客可访问，携带令牌时必须有效
func OptionalUserJWTMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens, false) {
			return
		}
		c.Next()
	}
}

// RBACMiddleware 基于 Casbin 的路由鉴权中间件
func RBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		userID := c.GetUint(userIDContextKey)
		if userID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		role := c.GetString(userRoleContextKey)

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceUser(userID, role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"user_id", userID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionMiddleware 解析游客会话 ID，不存在时签发新的会话 Cookie
func SessionMiddleware(resolver *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolver == nil {
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal_error"))
			c.Abort()
			return
		}
		sessionID, err := resolver.Resolve(c.Writer, c.Request, true)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSessionID) {
				response.BadRequest(c, i18n.T(i18n.ResolveLocale(c), "error.session_invalid"))
				c.Abort()
				return
			}
			logger.Warnw("session_resolve_failed", "request_id", getRequestID(c), "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.internal_error"))
			c.Abort()
			return
		}
		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}
