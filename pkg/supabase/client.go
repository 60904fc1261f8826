package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("supabase: url not configured")

// Client Supabase 管理端客户端
// 业务数据直接走 Postgres，这里只用于健康检查
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient apiKey 优先使用 service role key
func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: baseURL,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5*time.Second).
			SetHeader("apikey", apiKey).
			SetAuthToken(apiKey),
	}
}

// Configured 是否配置了 SUPABASE_URL
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// HealthStatus GoTrue /auth/v1/health 返回
type HealthStatus struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// AuthHealth 检查 Supabase Auth 服务是否可用
func (c *Client) AuthHealth(ctx context.Context) (*HealthStatus, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var out HealthStatus
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/auth/v1/health")
	if err != nil {
		return nil, fmt.Errorf("supabase: auth health: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supabase: auth health status %d: %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}
