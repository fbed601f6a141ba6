package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"peekweb/internal/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// TokenStore 持有 Bearer 令牌的存储，会话包为用户和管理员各实现一份
type TokenStore interface {
	Token() string
	ClearToken()
}

// Client 远端 API 客户端。零值不可用，使用 New 创建
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenStore
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout 0 表示沿用传输层默认值
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit 出站限流，qps <= 0 不限流
func WithRateLimit(qps float64, burst int) Option {
	return func(c *Client) {
		if qps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTokens 返回绑定令牌存储的副本，HTTP 连接池和限流器共享
func (c *Client) WithTokens(ts TokenStore) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestConfig struct {
	skipAuthRedirect bool
}

type RequestOption func(*requestConfig)

// WithoutAuthRedirect 登录提交专用：401 不清令牌，返回 ErrInvalidCredentials
func WithoutAuthRedirect() RequestOption {
	return func(rc *requestConfig) {
		rc.skipAuthRedirect = true
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

func (c *Client) post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do 发送请求并解开信封，out 为 nil 时丢弃 data
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Kind: KindNetwork, Msg: "网络请求失败", Err: err}
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := logger.Log.WithFields(logrus.Fields{"method": method, "path": path})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("api request failed")
		return &APIError{Kind: KindNetwork, Msg: "网络请求失败，请检查网络连接", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindNetwork, Status: resp.StatusCode, Msg: "读取响应失败", Err: err}
	}
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)}).Debug("api request")

	if resp.StatusCode == http.StatusUnauthorized {
		return c.unauthorized(log, respBody, rc)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(respBody)
		if msg == "" {
			msg = fmt.Sprintf("HTTP error, status %d", resp.StatusCode)
		}
		apiErr := &APIError{Kind: KindHTTP, Status: resp.StatusCode, Msg: msg}
		if resp.StatusCode == http.StatusNotFound {
			apiErr.Err = ErrNotFound
		}
		return apiErr
	}

	data, err := decodeEnvelope(respBody)
	if err != nil {
		return err
	}
	if out == nil || isNull(data) {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Kind: KindDecode, Msg: "响应数据解析失败", Err: err}
	}
	return nil
}

// unauthorized 401 统一处理：清一次令牌并返回 ErrUnauthorized；登录提交除外
func (c *Client) unauthorized(log *logrus.Entry, body []byte, rc requestConfig) error {
	msg := serverMessage(body)
	if rc.skipAuthRedirect {
		if msg == "" {
			msg = "用户名或密码错误"
		}
		return &APIError{Kind: KindAuth, Status: http.StatusUnauthorized, Msg: msg, Err: ErrInvalidCredentials}
	}
	if c.tokens != nil {
		c.tokens.ClearToken()
	}
	log.Warn("api returned 401, token cleared")
	if msg == "" {
		msg = "登录已过期，请重新登录"
	}
	return &APIError{Kind: KindAuth, Status: http.StatusUnauthorized, Msg: msg, Err: ErrUnauthorized}
}

// fetchList GET 列表接口并解码
func fetchList[T any](ctx context.Context, c *Client, path string, query url.Values, keys ...string) (List[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return List[T]{}, err
	}
	return decodeList[T](raw, keys...)
}

// pageQuery 通用分页参数
func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}
