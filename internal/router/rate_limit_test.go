package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestKeyBySessionOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/session/cart", nil)
	c.Request.RemoteAddr = "1.2.3.4:5678"

	if key := KeyBySessionOrIP(c); key != "ip:1.2.3.4" {
		t.Fatalf("key want ip:1.2.3.4 got %s", key)
	}
	c.Set(sessionContextKey, "abcdef123456")
	if key := KeyBySessionOrIP(c); key != "session:abcdef123456" {
		t.Fatalf("key want session:abcdef123456 got %s", key)
	}
	c.Set(userIDContextKey, uint(7))
	if key := KeyBySessionOrIP(c); key != "user:7" {
		t.Fatalf("key want user:7 got %s", key)
	}
}

func TestRateLimitMiddlewareBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rule := RateLimitRule{Prefix: "test:rl", WindowSeconds: 10, MaxRequests: 2, BlockSeconds: 120}
	r := gin.New()
	r.Use(RateLimitMiddleware(client, rule, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	call := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "9.9.9.9:1000"
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := call(); !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("request %d should pass, got %s", i+1, w.Body.String())
		}
	}
	w := call()
	if !strings.Contains(w.Body.String(), `"status_code":429`) {
		t.Fatalf("third request should be limited, got %s", w.Body.String())
	}
	if ttl := mr.TTL("test:rl:9.9.9.9"); ttl != 120*time.Second {
		t.Fatalf("block ttl want 120s got %s", ttl)
	}

	mr.FastForward(121 * time.Second)
	if w := call(); !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("request after block should pass, got %s", w.Body.String())
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
