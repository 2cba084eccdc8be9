package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRemoteUnavailable 远端不可用（网络错误、5xx、429 或熔断打开）
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrNotFound 远端资源不存在
	ErrNotFound = errors.New("remote resource not found")
	// ErrRequestFailed 请求被远端拒绝
	ErrRequestFailed = errors.New("remote request failed")
	// ErrResponseInvalid 远端响应无法解析
	ErrResponseInvalid = errors.New("remote response invalid")
	// ErrConfigInvalid 远端配置无效
	ErrConfigInvalid = errors.New("remote config invalid")
)

// APIError 远端返回的错误
type APIError struct {
	HTTPStatus int
	Code       int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api error: http=%d code=%d msg=%s", e.HTTPStatus, e.Code, e.Msg)
}

// Transient 是否为可重试的临时错误
func (e *APIError) Transient() bool {
	return isTransientStatus(e.HTTPStatus) || isTransientStatus(e.Code)
}

// Is 支持 errors.Is 判断错误类别
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRemoteUnavailable:
		return e.Transient()
	case ErrNotFound:
		return e.HTTPStatus == http.StatusNotFound || e.Code == http.StatusNotFound
	case ErrRequestFailed:
		return !e.Transient()
	}
	return false
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// isTransient 网络错误与 5xx/429 可重试，其余不可重试
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRemoteUnavailable)
}
