package i18n

import (
	"fmt"
	"strings"

	"github.com/marketplace-next/storefront/internal/constants"

	"github.com/gin-gonic/gin"
)

// 站点语言
const (
	LocaleEN = constants.LocaleEn
	LocaleAR = constants.LocaleAr
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleEN

const localeContextKey = "locale"

// T 返回指定语言的文案，缺失时回退到默认语言，再缺失时返回 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 按语言取文案后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Normalize 将任意语言标签归一为受支持的语言
func Normalize(raw string) (string, bool) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return "", false
	}
	if idx := strings.IndexAny(tag, "-_"); idx > 0 {
		tag = tag[:idx]
	}
	for _, supported := range constants.SupportedLocales {
		if tag == supported {
			return supported, true
		}
	}
	return "", false
}

// IsRTL 判断语言是否从右到左书写
func IsRTL(locale string) bool {
	return constants.RTLLocales[locale]
}

// ResolveLocale 解析请求语言：lang 参数优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if value, ok := c.Get(localeContextKey); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	locale := resolveFromRequest(c)
	c.Set(localeContextKey, locale)
	return locale
}

func resolveFromRequest(c *gin.Context) string {
	if locale, ok := Normalize(c.Query("lang")); ok {
		return locale
	}
	if c.Request == nil {
		return DefaultLocale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(part, ";"); idx >= 0 {
			tag = part[:idx]
		}
		if locale, ok := Normalize(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[locale]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
