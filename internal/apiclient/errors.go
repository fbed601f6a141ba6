package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized 401，令牌已被清除，调用方应跳转登录页
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials 登录提交时的 401，不清令牌也不跳转
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound 404 或业务码 404
	ErrNotFound = errors.New("not found")
)

// Kind 错误类别
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTP
	KindLogical
	KindDecode
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindLogical:
		return "logical"
	case KindDecode:
		return "decode"
	case KindAuth:
		return "auth"
	}
	return "unknown"
}

// APIError 远端调用失败的统一形态
type APIError struct {
	Kind   Kind
	Status int // HTTP 状态码
	Code   int // 信封里的业务码
	Msg    string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil && (e.Kind == KindNetwork || e.Kind == KindDecode) {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message 展示给用户的文案
func (e *APIError) Message() string {
	return e.Msg
}

// Retryable 网络错误和 5xx 值得重试
func (e *APIError) Retryable() bool {
	return e.Kind == KindNetwork || (e.Kind == KindHTTP && e.Status >= 500)
}

// MessageOf 把任意错误转成展示文案
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return err.Error()
}

// IsUnauthorized 是否需要跳转登录
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
