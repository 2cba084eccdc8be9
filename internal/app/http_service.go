package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/marketplace-next/storefront/internal/session"
)

const readHeaderTimeout = 10 * time.Second

// HTTPService HTTP 服务封装
type HTTPService struct {
	name   string
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		name: "http",
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "http"
	}
	return s.name
}

// Start 启动服务
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// SessionJanitor 定期把空闲会话移出内存
type SessionJanitor struct {
	sessions *session.Manager
	done     chan struct{}
}

// NewSessionJanitor 创建会话清理服务
func NewSessionJanitor(sessions *session.Manager) *SessionJanitor {
	return &SessionJanitor{sessions: sessions, done: make(chan struct{})}
}

// Name 服务名称
func (s *SessionJanitor) Name() string {
	return "session_janitor"
}

// Start 运行至 ctx 结束
func (s *SessionJanitor) Start(ctx context.Context) error {
	defer close(s.done)
	if s.sessions != nil {
		s.sessions.Run(ctx)
	}
	<-ctx.Done()
	return nil
}

// Stop 等待清理循环退出
func (s *SessionJanitor) Stop(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
