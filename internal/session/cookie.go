package session

import (
	"net/http"
	"strings"

	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// Resolver 从请求中解析访客会话 ID：优先使用 X-Session-ID 头，其次使用签名 Cookie
type Resolver struct {
	cookies *sessions.CookieStore
	name    string
}

// NewResolver 创建会话解析器
func NewResolver(cfg config.CartConfig, secure bool) *Resolver {
	name := strings.TrimSpace(cfg.SessionCookie)
	if name == "" {
		name = constants.SessionCookieDefault
	}
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = secure
	cookies.Options.SameSite = http.SameSiteLaxMode
	if cfg.SessionMaxAge > 0 {
		cookies.Options.MaxAge = cfg.SessionMaxAge
	}
	return &Resolver{cookies: cookies, name: name}
}

// Resolve 返回会话 ID；create 为 true 且没有会话时生成新 ID 并写入 Cookie
func (r *Resolver) Resolve(w http.ResponseWriter, req *http.Request, create bool) (string, error) {
	if header := strings.TrimSpace(req.Header.Get(constants.SessionHeader)); header != "" {
		if !ValidID(header) {
			return "", ErrInvalidSessionID
		}
		return header, nil
	}

	// 签名校验失败时 Get 仍返回新会话，按无会话处理
	sess, _ := r.cookies.Get(req, r.name)
	if id, ok := sess.Values[constants.SessionValueKey].(string); ok && ValidID(id) {
		return id, nil
	}
	if !create {
		return "", nil
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	sess.Values[constants.SessionValueKey] = id
	if err := sess.Save(req, w); err != nil {
		return "", err
	}
	return id, nil
}
