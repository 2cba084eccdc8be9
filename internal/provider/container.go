package provider

import (
	"fmt"

	"github.com/marketplace-next/storefront/internal/authz"
	"github.com/marketplace-next/storefront/internal/cache"
	"github.com/marketplace-next/storefront/internal/catalog"
	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/logger"
	"github.com/marketplace-next/storefront/internal/models"
	"github.com/marketplace-next/storefront/internal/queue"
	"github.com/marketplace-next/storefront/internal/remote"
	"github.com/marketplace-next/storefront/internal/repository"
	"github.com/marketplace-next/storefront/internal/service"
	"github.com/marketplace-next/storefront/internal/session"
	"github.com/marketplace-next/storefront/internal/storage"
	"github.com/marketplace-next/storefront/internal/store"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       *cache.Store
	QueueClient *queue.Client

	// Repositories
	ProductRepo  repository.ProductRepository
	VendorRepo   repository.VendorRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	StorageRepo  repository.StorageRepository

	// Catalog
	Catalog      catalog.Lookup
	ProductCache *catalog.CachedLookup
	RemoteClient *remote.Client

	// Session
	SnapshotStorage storage.KV
	Sessions        *session.Manager
	SessionResolver *session.Resolver

	// Services
	AuthzService    *authz.Service
	ProductService  *service.ProductService
	CartService     *service.CartService
	WishlistService *service.WishlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	cacheStore, err := cache.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
		cacheStore = cache.New(nil, "")
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		DB:          models.DB,
		Cache:       cacheStore,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化商品目录与远端客户端
	if err := c.initCatalog(); err != nil {
		logger.Errorw("provider_init_catalog_failed", "error", err)
		panic(err)
	}

	// 3. 初始化 Services
	c.initServices()

	// 4. 初始化会话购物车
	if err := c.initSessions(); err != nil {
		logger.Errorw("provider_init_sessions_failed", "error", err)
		panic(err)
	}

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.VendorRepo = repository.NewVendorRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.StorageRepo = repository.NewStorageRepository(db)
}

func (c *Container) initCatalog() error {
	if c.Config.Remote.Enabled {
		client, err := remote.New(c.Config.Remote, nil)
		if err != nil {
			return fmt.Errorf("init remote client failed: %w", err)
		}
		c.RemoteClient = client
	}

	switch c.Config.Catalog.Driver {
	case constants.CatalogDriverRemote:
		if c.RemoteClient == nil {
			return fmt.Errorf("catalog driver remote requires remote.enabled")
		}
		c.ProductCache = catalog.NewCachedLookup(c.RemoteClient, c.Cache, c.Config.Catalog.CacheTTL())
	case "", constants.CatalogDriverDatabase:
		c.ProductCache = catalog.NewCachedLookup(catalog.NewRepositoryLookup(c.ProductRepo), c.Cache, c.Config.Catalog.CacheTTL())
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Config.Catalog.Driver)
	}
	c.Catalog = c.ProductCache
	return nil
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.ProductService = service.NewProductService(c.ProductRepo, c.Catalog)
	c.CartService = service.NewCartService(c.CartRepo, c.Catalog, c.Config.Cart.Currency)
	c.CartService.SetMaxLineQuantity(c.Config.Cart.MaxLineQuantity)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.Catalog)
}

func (c *Container) initSessions() error {
	kv, err := storage.Open(c.Config.Cart.StorageDriver, c.Cache.Client(), c.Cache.Key(constants.CacheKeyCartSnapshot), c.StorageRepo)
	if err != nil {
		return err
	}
	c.SnapshotStorage = kv
	c.Sessions = session.NewManager(session.Options{
		Storage:         kv,
		Catalog:         c.Catalog,
		StorageKey:      c.Config.Cart.StorageKey,
		Currency:        c.Config.Cart.Currency,
		MaxLineQuantity: c.Config.Cart.MaxLineQuantity,
		IdleTTL:         c.Config.Cart.SessionIdleTimeout(),
		Logger:          logger.Named("session"),
	})
	c.SessionResolver = session.NewResolver(c.Config.Cart, c.Config.Server.Mode == "release")
	return nil
}

// BackendFor 返回用户对应的同步后端：启用远端时走远端 API，否则使用本地服务
func (c *Container) BackendFor(userID uint, token string) store.Backend {
	if c.RemoteClient != nil {
		return c.RemoteClient.WithToken(token)
	}
	return service.NewCartBackend(c.CartService, c.WishlistService, userID)
}

// Close 释放外部连接
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
