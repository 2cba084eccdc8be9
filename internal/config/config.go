package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Cart     CartConfig     `mapstructure:"cart"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置（令牌由账户服务签发，此处只做校验）
type JWTConfig struct {
	SecretKey string `mapstructure:"secret"`
	Issuer    string `mapstructure:"issuer"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CartConfig 购物车存储配置
type CartConfig struct {
	StorageDriver   string `mapstructure:"storage_driver"` // memory / redis / database
	StorageKey      string `mapstructure:"storage_key"`
	Currency        string `mapstructure:"currency"`
	SessionCookie   string `mapstructure:"session_cookie"`
	SessionSecret   string `mapstructure:"session_secret"`
	SessionMaxAge   int    `mapstructure:"session_max_age_seconds"`
	SessionIdleTTL  int    `mapstructure:"session_idle_ttl_seconds"`
	MaxLineQuantity int    `mapstructure:"max_line_quantity"` // 单个行项目允许的最大数量
}

// SessionIdleTimeout 会话空闲淘汰时间
func (c CartConfig) SessionIdleTimeout() time.Duration {
	if c.SessionIdleTTL <= 0 {
		return 0
	}
	return time.Duration(c.SessionIdleTTL) * time.Second
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	Driver          string `mapstructure:"driver"` // database / remote
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

// CacheTTL 商品缓存时长
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RemoteConfig 远端购物车 API 配置
type RemoteConfig struct {
	Enabled        bool                 `mapstructure:"enabled"`
	BaseURL        string               `mapstructure:"base_url"`
	TimeoutMS      int                  `mapstructure:"timeout_ms"`
	MaxRetries     int                  `mapstructure:"max_retries"`
	RetryBackoffMS int                  `mapstructure:"retry_backoff_ms"`
	Breaker        CircuitBreakerConfig `mapstructure:"breaker"`
}

// Timeout 单次请求超时
func (c RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RetryBackoff 首次重试等待时间
func (c RemoteConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMS) * time.Millisecond
}

// CircuitBreakerConfig 熔断配置
type CircuitBreakerConfig struct {
	MaxRequests         uint32 `mapstructure:"max_requests"`
	IntervalSeconds     int    `mapstructure:"interval_seconds"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	ConsecutiveFailures uint32 `mapstructure:"consecutive_failures"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	CartRateLimit RateLimitConfig `mapstructure:"cart_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// SetDefaults 注册默认配置
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/storefront.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "sf")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	v.SetDefault("cart.storage_driver", "database")
	v.SetDefault("cart.storage_key", "cart-storage")
	v.SetDefault("cart.currency", "USD")
	v.SetDefault("cart.session_cookie", "storefront_session")
	v.SetDefault("cart.session_secret", "session-change-me-in-production")
	v.SetDefault("cart.session_max_age_seconds", 60*60*24*30)
	v.SetDefault("cart.session_idle_ttl_seconds", 60*60)
	v.SetDefault("cart.max_line_quantity", 999)
	v.SetDefault("catalog.driver", "database")
	v.SetDefault("catalog.cache_ttl_seconds", 60)
	v.SetDefault("remote.enabled", false)
	v.SetDefault("remote.base_url", "http://127.0.0.1:8080/api/v1")
	v.SetDefault("remote.timeout_ms", 5000)
	v.SetDefault("remote.max_retries", 2)
	v.SetDefault("remote.retry_backoff_ms", 200)
	v.SetDefault("remote.breaker.max_requests", 1)
	v.SetDefault("remote.breaker.interval_seconds", 60)
	v.SetDefault("remote.breaker.timeout_seconds", 30)
	v.SetDefault("remote.breaker.consecutive_failures", 5)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Session-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.cart_rate_limit.window_seconds", 60)
	v.SetDefault("security.cart_rate_limit.max_requests", 120)
	v.SetDefault("security.cart_rate_limit.block_seconds", 60)
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // 从当前目录查找
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	SetDefaults(v)

	// 环境变量支持（例如 server.port -> SERVER_PORT）
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// Decode 将 viper 中的配置解析为 Config
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Cart.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.Cart.StorageDriver))
	cfg.Cart.Currency = strings.ToUpper(strings.TrimSpace(cfg.Cart.Currency))
	cfg.Catalog.Driver = strings.ToLower(strings.TrimSpace(cfg.Catalog.Driver))
	return &cfg, nil
}
