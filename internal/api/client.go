// Package api is the single egress point to the SMB backend. Every call
// carries the current session token as a `token` query parameter and every
// non-2xx response is normalised into an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smbsuite/internal/config"
)

// TokenSource 提供当前会话 token；无会话时返回空串
// TokenSource yields the current session token, or "" when there is no session
type TokenSource interface {
	Token() string
}

// RequestOptions 单次请求的可选项
// RequestOptions tunes a single request
type RequestOptions struct {
	// Method 默认 GET / defaults to GET
	Method string
	// Body 非 nil 时序列化为 JSON 请求体
	// Body is JSON-encoded as the request body when non-nil
	Body any
	// Public 为 true 时不附加 token（登录、注册）
	// Public skips the token parameter (login, register)
	Public bool
}

type Client struct {
	baseURL    string
	userAgent  string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewClient 构造网关；TimeoutMS<=0 表示不设超时
// NewClient builds the gateway; TimeoutMS<=0 means no client-side timeout
func NewClient(cfg config.APIConfig, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	httpClient := &http.Client{}
	if cfg.TimeoutMS > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  userAgent,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL 运行时切换后端地址
// SetBaseURL switches the backend address at runtime
func (c *Client) SetBaseURL(baseURL string) error {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return fmt.Errorf("base url is empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	c.mu.Lock()
	c.baseURL = baseURL
	c.mu.Unlock()
	return nil
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// Request 发送请求并返回原始 JSON。
// 2xx 且响应体为空或非 JSON 时返回 (nil, nil)。
//
// Request sends a request and returns the raw JSON payload.
// A 2xx response with an empty or non-JSON body yields (nil, nil).
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.BaseURL() + path
	if !opts.Public {
		target = withToken(target, c.token())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			"method", method, "path", path, "request_id", requestID, "err", err)
		return nil, &Error{Message: networkErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := ErrorFromResponse(resp.StatusCode, data)
		c.logger.Warn("api request rejected",
			"method", method, "path", path, "status", resp.StatusCode, "request_id", requestID, "message", apiErr.Message)
		return nil, apiErr
	}
	if readErr != nil {
		return nil, &Error{Status: resp.StatusCode, Message: networkErrorMessage, Err: readErr}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, nil
	}
	return json.RawMessage(trimmed), nil
}

// Do 发送请求并把结果解码到 out；无内容时 out 保持不变
// Do sends a request and decodes the result into out; out is untouched when there is no content
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	return decodeInto(raw, out, method, path)
}

func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body, Public: true})
	if err != nil {
		return err
	}
	return decodeInto(raw, out, method, path)
}

func decodeInto(raw json.RawMessage, out any, method, path string) error {
	if raw == nil || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// ExportContactsURL 带凭证的联系人 CSV 导出地址（由浏览器或 curl 打开）
// ExportContactsURL is the credentialed contacts CSV export address
func (c *Client) ExportContactsURL() string {
	return withToken(c.BaseURL()+"/crm/contacts/export", c.token())
}

// PublicQuoteURL 报价单公开分享地址，无需凭证
// PublicQuoteURL is the unauthenticated share address of a quote
func (c *Client) PublicQuoteURL(publicToken string) string {
	return c.BaseURL() + "/public/quote/" + url.PathEscape(publicToken)
}

// withToken 追加 token 参数；路径已含查询串时用 & 连接
// withToken appends the token parameter, joining with & when a query string exists
func withToken(target, token string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "token=" + url.QueryEscape(token)
}

func withQuery(path string, values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
