// Package adminclient 管理端 HTTP 客户端：显式的登录态、类型化错误、无重试
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/listview"
)

var (
	// ErrTransport 请求没有拿到响应（连不上、超时、被取消）
	ErrTransport = errors.New("adminclient: cannot connect to server")
	// ErrUnauthorized 401；持有 token（含已过期）时会清空登录态并触发 OnUnauthorized
	ErrUnauthorized = errors.New("adminclient: unauthorized")
	// ErrValidation 提交前的本地校验失败，请求未发送
	ErrValidation = errors.New("adminclient: validation failed")
)

// APIError 服务端返回的业务错误，Message 原样展示给用户
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adminclient: %d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// AuthContext 登录态（token + 过期时间）
type AuthContext struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

func (a *AuthContext) Set(token string, expiresAt time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token, a.expiresAt = token, expiresAt
}

// Token 过期或未登录时 ok=false
func (a *AuthContext) Token() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.token == "" || (!a.expiresAt.IsZero() && time.Now().After(a.expiresAt)) {
		return "", false
	}
	return a.token, true
}

func (a *AuthContext) Clear() { a.Set("", time.Time{}) }

func (a *AuthContext) LoggedIn() bool {
	_, ok := a.Token()
	return ok
}

// Held 是否保存着 token（含已过期的）
func (a *AuthContext) Held() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Auth    *AuthContext
	Log     *zap.Logger

	// OnUnauthorized 收到 401 时调用（跳转登录页等）
	OnUnauthorized func()

	// 本地列表缓存，只由服务端返回的实体驱动
	Categories *listview.Collection[domain.Category]
	Products   *listview.Collection[domain.Product]
	Banners    *listview.Collection[domain.Banner]
}

func New(baseURL string, onUnauthorized func()) *Client {
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		HTTP:           &http.Client{Timeout: 30 * time.Second},
		Auth:           &AuthContext{},
		Log:            zap.NewNop(),
		OnUnauthorized: onUnauthorized,
		Categories:     listview.NewCollection[domain.Category](),
		Products:       listview.NewCollection[domain.Product](),
		Banners:        listview.NewCollection[domain.Banner](),
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if tok, ok := c.Auth.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// send 发送并处理传输错误与 401；调用方负责关闭 body
func (c *Client) send(req *http.Request) (*http.Response, error) {
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Debug("admin api unreachable", zap.String("url", req.URL.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return res, nil
}

// decode 解析统一信封；非 2xx 或 success=false 转为 *APIError
func (c *Client) decode(res *http.Response, out any) error {
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	var env envelope
	jsonErr := json.Unmarshal(b, &env)
	if res.StatusCode >= 400 || jsonErr != nil || !env.Success {
		ae := &APIError{Status: res.StatusCode, Code: env.Code, Message: env.Msg}
		if ae.Message == "" {
			ae.Message = http.StatusText(res.StatusCode)
		}
		// 登录失败不算会话失效；过期 token 不会随请求发送，按是否持有判断
		if res.StatusCode == http.StatusUnauthorized && !isLogin(res.Request) &&
			(c.Auth.Held() || sentToken(res.Request)) {
			c.Auth.Clear()
			if c.OnUnauthorized != nil {
				c.OnUnauthorized()
			}
		}
		return ae
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func isLogin(req *http.Request) bool {
	return req != nil && strings.HasSuffix(req.URL.Path, loginPath)
}

func sentToken(req *http.Request) bool {
	return req != nil && req.Header.Get("Authorization") != ""
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, q, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.send(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return c.decode(res, out)
}

// upload multipart 单文件
func (c *Client) upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := c.send(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return c.decode(res, out)
}

// download 二进制响应；出错时服务端仍返回 JSON 信封
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK || strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		return nil, c.decode(res, nil)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return b, nil
}

const loginPath = "/api/auth/login"

// Login 成功后写入 AuthContext
func (c *Client) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	var out service.LoginResult
	if err := c.do(ctx, http.MethodPost, loginPath, nil,
		map[string]string{"email": email, "password": password}, &out); err != nil {
		return nil, err
	}
	c.Auth.Set(out.Token, out.ExpiresAt)
	return &out, nil
}

func (c *Client) Logout() { c.Auth.Clear() }

func (c *Client) Me(ctx context.Context) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
