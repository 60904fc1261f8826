package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yuntuke_server/pkg/supabase"
)

// AuthHealthChecker Supabase Auth 健康检查
type AuthHealthChecker interface {
	Configured() bool
	AuthHealth(ctx context.Context) (*supabase.HealthStatus, error)
}

// CachePinger 缓存健康检查
type CachePinger interface {
	Ping(ctx context.Context) error
}

const (
	apiName        = "云推客严选API"
	apiVersion     = "1.0.0"
	apiDescription = "云推客严选后端API服务"
)

// HealthController 依赖健康检查
type HealthController struct {
	db       *gorm.DB
	supabase AuthHealthChecker
	cache    CachePinger
}

func NewHealthController(db *gorm.DB, sb AuthHealthChecker, cache CachePinger) *HealthController {
	return &HealthController{db: db, supabase: sb, cache: cache}
}

// VersionInfo 服务版本
type VersionInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// PingResponse 存活检查
type PingResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ComponentStatus 单个依赖的状态
type ComponentStatus struct {
	Status  string `json:"status"` // ok / error / disabled
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
	Version string `json:"version,omitempty"`
}

// HealthResponse 健康检查结果
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 数据库不可用时返回 503，Supabase Auth 或缓存不可用只标记 degraded
// @Tags Health
// @Produce json
// @Success 200 {object} dto.Response{data=controller.HealthResponse}
// @Failure 503 {object} dto.Response{data=controller.HealthResponse}
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Components: map[string]ComponentStatus{}}

	db := ctrl.checkDatabase(ctx)
	resp.Components["database"] = db
	if db.Status != "ok" {
		resp.Status = "down"
	}

	sb := ctrl.checkSupabase(ctx)
	resp.Components["supabase_auth"] = sb
	if sb.Status == "error" && resp.Status == "ok" {
		resp.Status = "degraded"
	}

	cs := ctrl.checkCache(ctx)
	resp.Components["cache"] = cs
	if cs.Status == "error" && resp.Status == "ok" {
		resp.Status = "degraded"
	}

	status := http.StatusOK
	if resp.Status == "down" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"code": codeFor(status), "message": resp.Status, "data": resp})
}

func (ctrl *HealthController) checkDatabase(ctx context.Context) ComponentStatus {
	start := time.Now()
	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return ComponentStatus{Status: "error", Error: err.Error()}
	}
	return ComponentStatus{Status: "ok", Latency: time.Since(start).String()}
}

func (ctrl *HealthController) checkSupabase(ctx context.Context) ComponentStatus {
	if ctrl.supabase == nil || !ctrl.supabase.Configured() {
		return ComponentStatus{Status: "disabled"}
	}
	start := time.Now()
	hs, err := ctrl.supabase.AuthHealth(ctx)
	if err != nil {
		return ComponentStatus{Status: "error", Error: err.Error()}
	}
	return ComponentStatus{Status: "ok", Latency: time.Since(start).String(), Version: hs.Version}
}

func (ctrl *HealthController) checkCache(ctx context.Context) ComponentStatus {
	if ctrl.cache == nil {
		return ComponentStatus{Status: "disabled"}
	}
	start := time.Now()
	if err := ctrl.cache.Ping(ctx); err != nil {
		return ComponentStatus{Status: "error", Error: err.Error()}
	}
	return ComponentStatus{Status: "ok", Latency: time.Since(start).String()}
}

// Ping 存活检查，不访问任何依赖
// @Summary 存活检查
// @Tags Health
// @Produce json
// @Success 200 {object} dto.Response{data=controller.PingResponse}
// @Router /health/ping [get]
func (ctrl *HealthController) Ping(c *gin.Context) {
	ok(c, PingResponse{Message: "pong", Status: "ok", Timestamp: time.Now()})
}

// Version 服务版本
// @Summary 服务版本信息
// @Tags Health
// @Produce json
// @Success 200 {object} dto.Response{data=controller.VersionInfo}
// @Router /health/version [get]
func (ctrl *HealthController) Version(c *gin.Context) {
	ok(c, VersionInfo{Name: apiName, Version: apiVersion, Description: apiDescription})
}

func codeFor(status int) int {
	if status == http.StatusOK {
		return 0
	}
	return status
}
