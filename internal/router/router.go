package router

import (
	"sort"
	"strings"

	"github.com/marketplace-next/storefront/internal/authz"
	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"
	adminhandlers "github.com/marketplace-next/storefront/internal/http/handlers/admin"
	publichandlers "github.com/marketplace-next/storefront/internal/http/handlers/public"
	"github.com/marketplace-next/storefront/internal/http/response"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/provider"
	"github.com/marketplace-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const apiV1Prefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	tokens := service.NewTokenService(cfg.JWT)

	cartRule := RateLimitRule{
		Prefix:        c.Cache.Key(constants.CacheKeyRateLimit, "cart"),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CartRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	cartLimiter := RateLimitMiddleware(c.Cache.Client(), cartRule, KeyBySessionOrIP)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group(apiV1Prefix)
	{
		apiV1.GET("/health", healthHandler)
		apiV1.GET("/products/:id", publicHandler.GetProduct)

		// 会话购物车（游客或已登录用户）
		sessionGroup := apiV1.Group("/session")
		sessionGroup.Use(OptionalUserJWTMiddleware(tokens), SessionMiddleware(c.SessionResolver), cartLimiter)
		{
			sessionGroup.GET("/cart", publicHandler.GetSessionCart)
			sessionGroup.GET("/cart/summary", publicHandler.GetSessionCartSummary)
			sessionGroup.POST("/cart/items", publicHandler.AddSessionCartItem)
			sessionGroup.PUT("/cart/items/:id", publicHandler.UpdateSessionCartItem)
			sessionGroup.DELETE("/cart/items/:id", publicHandler.DeleteSessionCartItem)
			sessionGroup.DELETE("/cart", publicHandler.ClearSessionCart)
			sessionGroup.POST("/cart/sync", publicHandler.SyncSessionCart)
			sessionGroup.GET("/wishlist", publicHandler.GetSessionWishlist)
			sessionGroup.POST("/wishlist", publicHandler.AddSessionWishlistItem)
			sessionGroup.DELETE("/wishlist", publicHandler.ClearSessionWishlist)
			sessionGroup.DELETE("/wishlist/:product_id", publicHandler.DeleteSessionWishlistItem)
			sessionGroup.POST("/wishlist/:product_id/move-to-cart", publicHandler.MoveSessionWishlistItemToCart)
		}

		// 用户购物车接口（需要登录）
		userGroup := apiV1.Group("")
		userGroup.Use(UserJWTAuthMiddleware(tokens), RBACMiddleware(c.AuthzService), cartLimiter)
		{
			userGroup.GET("/cart", publicHandler.GetCart)
			userGroup.DELETE("/cart", publicHandler.ClearCart)
			userGroup.POST("/cart/items", publicHandler.AddCartItem)
			userGroup.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			userGroup.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			userGroup.POST("/cart/merge", publicHandler.MergeCart)
			userGroup.GET("/wishlist", publicHandler.GetWishlist)
			userGroup.POST("/wishlist", publicHandler.AddWishlistItem)
			userGroup.DELETE("/wishlist", publicHandler.ClearWishlist)
			userGroup.DELETE("/wishlist/:product_id", publicHandler.DeleteWishlistItem)
		}

		// 管理接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(tokens), RBACMiddleware(c.AuthzService))
		{
			admin.GET("/sessions", adminHandler.ListSessions)
			admin.GET("/sessions/:session_id/cart", adminHandler.GetSessionCart)
			admin.DELETE("/sessions/:session_id/cart", adminHandler.DeleteSessionCart)
			admin.DELETE("/products/:id/cache", adminHandler.InvalidateProductCache)
			admin.GET("/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildPermissionCatalog(r))
			})
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.POST("/authz/reload", adminHandler.ReloadAuthzPolicy)
			admin.GET("/users/:id/roles", adminHandler.GetUserRoles)
			admin.PUT("/users/:id/roles", adminHandler.SetUserRoles)
		}
	}

	// 健康检查
	r.GET("/health", healthHandler)

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// rbacPrefixes 受 RBAC 保护的路由前缀
var rbacPrefixes = []string{
	apiV1Prefix + "/admin/",
	apiV1Prefix + "/cart",
	apiV1Prefix + "/wishlist",
}

func isRBACRoute(path string) bool {
	for _, prefix := range rbacPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !isRBACRoute(item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
