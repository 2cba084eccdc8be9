package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/logger"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = 200 * time.Millisecond
	maxResponseBytes    = 4 << 20
)

// envelope 远端统一响应结构
type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

// Client 远端购物车与商品目录 API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *zap.SugaredLogger
	sleep      func(ctx context.Context, d time.Duration) error
}

// New 创建客户端
func New(cfg config.RemoteConfig, httpClient *http.Client) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff()
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	log := logger.Named("remote_client", "base_url", baseURL)
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		maxRetries: retries,
		backoff:    backoff,
		breaker:    newBreaker(cfg.Breaker, log),
		log:        log,
		sleep:      sleepContext,
	}, nil
}

func newBreaker(cfg config.CircuitBreakerConfig, log *zap.SugaredLogger) *gobreaker.CircuitBreaker[[]byte] {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "remote-cart",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 4xx 属于调用方问题，不计入熔断
		IsSuccessful: func(err error) bool {
			return !isTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("remote_breaker_state_changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// WithToken 返回携带用户令牌的客户端副本，熔断状态共享
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = strings.TrimSpace(token)
	return &cp
}

// do 发送请求并解析 data 字段；只有 GET 会在临时错误时重试
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrRequestFailed, err)
		}
		payload = raw
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.maxRetries
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			c.log.Debugw("remote_request_retry", "method", method, "path", path, "attempt", attempt, "wait", wait, "error", lastErr)
			if err := c.sleep(ctx, wait); err != nil {
				return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
			}
		}
		data, err := c.breaker.Execute(func() ([]byte, error) {
			return c.once(ctx, method, path, payload)
		})
		if err == nil {
			return decodeData(data, out)
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}
		lastErr = err
		if !isTransient(err) || ctx.Err() != nil {
			break
		}
	}
	c.log.Warnw("remote_request_failed", "method", method, "path", path, "error", lastErr)
	return lastErr
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRemoteUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Code = env.StatusCode
			apiErr.Msg = env.Msg
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrResponseInvalid, decodeErr)
	}
	if env.StatusCode != 0 {
		return nil, &APIError{HTTPStatus: resp.StatusCode, Code: env.StatusCode, Msg: env.Msg}
	}
	return env.Data, nil
}

func decodeData(data []byte, out interface{}) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrResponseInvalid, err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
