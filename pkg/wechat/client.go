package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL 微信开放接口地址
const DefaultBaseURL = "https://api.weixin.qq.com"

var (
	ErrNotConfigured = errors.New("wechat: appid or secret not configured")
	ErrEmptyCode     = errors.New("wechat: empty js_code")
)

// APIError 微信接口返回的业务错误
type APIError struct {
	Code    int    `json:"errcode"`
	Message string `json:"errmsg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wechat: errcode=%d errmsg=%s", e.Code, e.Message)
}

// Session jscode2session 返回结果
type Session struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid,omitempty"`
}

type sessionResp struct {
	Session
	APIError
}

// Client 小程序登录客户端
type Client struct {
	appID     string
	appSecret string
	http      *resty.Client
}

// Config 客户端配置
type Config struct {
	AppID     string
	AppSecret string
	BaseURL   string
	Timeout   time.Duration
}

// NewClient 创建微信客户端
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("User-Agent", "yuntuke-server/1.0"),
	}
}

// Configured 是否已配置 appid/secret
func (c *Client) Configured() bool {
	return c.appID != "" && c.appSecret != ""
}

// Code2Session 用小程序 wx.login 得到的 code 换取 openid
func (c *Client) Code2Session(ctx context.Context, code string) (*Session, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if code == "" {
		return nil, ErrEmptyCode
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appid":      c.appID,
			"secret":     c.appSecret,
			"js_code":    code,
			"grant_type": "authorization_code",
		}).
		Get("/sns/jscode2session")
	if err != nil {
		return nil, fmt.Errorf("wechat: request jscode2session: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("wechat: jscode2session status %d", resp.StatusCode())
	}

	// 微信返回的 Content-Type 是 text/plain，这里手动解析
	var out sessionResp
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("wechat: decode jscode2session: %w", err)
	}
	if out.APIError.Code != 0 {
		apiErr := out.APIError
		return nil, &apiErr
	}
	if out.OpenID == "" {
		return nil, errors.New("wechat: empty openid in response")
	}

	return &out.Session, nil
}
