package constants

// 购物车存储常量
const (
	CartStorageKeyDefault      = "cart-storage"
	CurrencyDefault            = "USD"
	CartMaxLineQuantityDefault = 999
)

// 快照存储驱动常量
const (
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverDatabase = "database"
)

// 商品目录来源常量
const (
	CatalogDriverDatabase = "database"
	CatalogDriverRemote   = "remote"
)

// 会话常量
const (
	SessionHeader        = "X-Session-ID"
	SessionCookieDefault = "storefront_session"
	SessionValueKey      = "sid"
)

// 角色常量
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
	TaskCartSync  = "cart:sync"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault   = "sf"
	CacheKeyProduct      = "catalog:product"
	CacheKeyRateLimit    = "rate_limit"
	CacheKeyCartSnapshot = "snapshot"
)

// 站点语言常量
const (
	LocaleEn = "en"
	LocaleAr = "ar"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEn, LocaleAr}

// RTLLocales 从右到左书写的语言
var RTLLocales = map[string]bool{LocaleAr: true}
