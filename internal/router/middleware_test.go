package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marketplace-next/storefront/internal/authz"
	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"
	"github.com/marketplace-next/storefront/internal/service"
	"github.com/marketplace-next/storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func setupRouterAuthz(t *testing.T) *authz.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(UserJWTAuthMiddleware(service.NewTokenService(config.JWTConfig{})))
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if resp := decodeEnvelope(t, w); resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(config.JWTConfig{SecretKey: "router-secret"})

	r := gin.New()
	r.Use(UserJWTAuthMiddleware(tokens))
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint(userIDContextKey),
			"role":    c.GetString(userRoleContextKey),
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if resp := decodeEnvelope(t, w); resp.StatusCode != 401 {
		t.Fatalf("missing header status_code want 401 got %d", resp.StatusCode)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	if resp := decodeEnvelope(t, w); resp.StatusCode != 401 {
		t.Fatalf("malformed header status_code want 401 got %d", resp.StatusCode)
	}

	token, err := tokens.Generate(9, "support", time.Hour)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var got struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if got.UserID != 9 || got.Role != "support" {
		t.Fatalf("unexpected claims in context: %+v", got)
	}
}

func TestOptionalUserJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(config.JWTConfig{SecretKey: "router-secret"})

	r := gin.New()
	r.Use(OptionalUserJWTMiddleware(tokens))
	r.GET("/session/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(userIDContextKey)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session/cart", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user_id":0`) {
		t.Fatalf("guest request should pass, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)
	if resp := decodeEnvelope(t, w); resp.StatusCode != 401 {
		t.Fatalf("invalid token status_code want 401 got %d", resp.StatusCode)
	}
}

func TestRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := setupRouterAuthz(t)

	newEngine := func(userID uint, role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if userID > 0 {
				c.Set(userIDContextKey, userID)
			}
			c.Set(userRoleContextKey, role)
			c.Next()
		})
		r.Use(RBACMiddleware(svc))
		api := r.Group(apiV1Prefix)
		api.GET("/cart", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		api.GET("/admin/sessions", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		api.DELETE("/admin/sessions/:session_id/cart", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		return r
	}

	cases := []struct {
		name   string
		userID uint
		role   string
		method string
		path   string
		want   int
	}{
		{name: "anonymous", userID: 0, role: "", method: http.MethodGet, path: "/api/v1/cart", want: 401},
		{name: "customer_cart", userID: 1, role: "customer", method: http.MethodGet, path: "/api/v1/cart", want: 0},
		{name: "customer_admin", userID: 1, role: "customer", method: http.MethodGet, path: "/api/v1/admin/sessions", want: 403},
		{name: "support_read", userID: 2, role: "support", method: http.MethodGet, path: "/api/v1/admin/sessions", want: 0},
		{name: "support_delete", userID: 2, role: "support", method: http.MethodDelete, path: "/api/v1/admin/sessions/abcdef123456/cart", want: 403},
		{name: "admin_delete", userID: 3, role: "admin", method: http.MethodDelete, path: "/api/v1/admin/sessions/abcdef123456/cart", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newEngine(tc.userID, tc.role).ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if tc.want == 0 {
				if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
					t.Fatalf("expected handler response, got %d %s", w.Code, w.Body.String())
				}
				return
			}
			if resp := decodeEnvelope(t, w); resp.StatusCode != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := session.NewResolver(config.CartConfig{SessionSecret: "cookie-secret"}, false)

	r := gin.New()
	r.Use(SessionMiddleware(resolver))
	r.GET("/session/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": c.GetString(sessionContextKey)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session/cart", nil)
	req.Header.Set(constants.SessionHeader, "client-session-01")
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"session_id":"client-session-01"`) {
		t.Fatalf("header session id should be used, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/session/cart", nil)
	req.Header.Set(constants.SessionHeader, "bad id!")
	r.ServeHTTP(w, req)
	if resp := decodeEnvelope(t, w); resp.StatusCode != 400 {
		t.Fatalf("invalid session status_code want 400 got %d", resp.StatusCode)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session/cart", nil))
	if len(w.Result().Cookies()) == 0 {
		t.Fatalf("new session should set a cookie")
	}
	var first struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if first.SessionID == "" {
		t.Fatalf("session id should be generated")
	}

	w2 := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/session/cart", nil)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w2, req)
	if !strings.Contains(w2.Body.String(), first.SessionID) {
		t.Fatalf("cookie session should be reused, got %s", w2.Body.String())
	}
}
