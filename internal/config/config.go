package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用配置
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	WeChat   WeChatConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Order    OrderConfig
	Paging   PagingConfig
}

// AppConfig 服务配置
type AppConfig struct {
	Env                string // development / staging / production
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     string // silent / error / warn / info
	AutoMigrate  bool   // true: 执行内置 SQL 迁移
}

// JWTConfig 会话令牌配置
// Secret 与 Supabase 项目的 JWT Secret 保持一致，RLS 才能识别 auth.uid()
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// WeChatConfig 微信小程序配置
type WeChatConfig struct {
	AppID      string
	AppSecret  string
	APIBaseURL string
}

// SupabaseConfig Supabase 项目配置
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// RedisConfig 缓存配置，URL 为空时使用进程内缓存
type RedisConfig struct {
	URL string
}

// KafkaConfig 事件总线配置，Brokers 为空时事件只写日志
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// OrderConfig 订单配置
type OrderConfig struct {
	PayTimeout  time.Duration // 未支付订单自动取消时间
	// TimeoutCron 支持 5 段或 6 段 (首段为秒) cron 表达式，以及 @every 1m 这类描述符
	TimeoutCron string
}

// PagingConfig 分页配置
type PagingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// IsProduction 是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment 是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// ==================== 加载 ====================

// Load 加载配置
// 优先级：环境变量 > .env 文件 > 默认值
func Load(envFiles ...string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:                v.GetString("APP_ENV"),
			Port:               v.GetString("SERVER_PORT"),
			LogLevel:           v.GetString("LOG_LEVEL"),
			CORSAllowedOrigins: splitCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		WeChat: WeChatConfig{
			AppID:      v.GetString("WECHAT_APP_ID"),
			AppSecret:  v.GetString("WECHAT_APP_SECRET"),
			APIBaseURL: v.GetString("WECHAT_API_BASE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:     v.GetString("SUPABASE_URL"),
			AnonKey: v.GetString("SUPABASE_ANON_KEY"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitCSV(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Order: OrderConfig{
			PayTimeout:  v.GetDuration("ORDER_PAY_TIMEOUT"),
			TimeoutCron: v.GetString("ORDER_TIMEOUT_CRON"),
		},
		Paging: PagingConfig{
			DefaultPageSize: v.GetInt("DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("MAX_PAGE_SIZE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("JWT_SECRET", "yuntuke-secret-key-change-in-production")
	v.SetDefault("JWT_ACCESS_TTL", "2h")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("JWT_ISSUER", "yuntuke")

	v.SetDefault("WECHAT_API_BASE_URL", "https://api.weixin.qq.com")
	v.SetDefault("KAFKA_TOPIC", "yuntuke.events")

	v.SetDefault("ORDER_PAY_TIMEOUT", "30m")
	v.SetDefault("ORDER_TIMEOUT_CRON", "@every 1m")

	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("MAX_PAGE_SIZE", 100)
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL 未配置")
	}
	if c.IsProduction() {
		if c.JWT.Secret == "" || strings.HasPrefix(c.JWT.Secret, "yuntuke-secret-key") {
			return fmt.Errorf("生产环境必须配置 JWT_SECRET")
		}
		if c.WeChat.AppID == "" || c.WeChat.AppSecret == "" {
			return fmt.Errorf("生产环境必须配置 WECHAT_APP_ID / WECHAT_APP_SECRET")
		}
	}
	if c.Paging.DefaultPageSize <= 0 || c.Paging.MaxPageSize < c.Paging.DefaultPageSize {
		return fmt.Errorf("分页配置无效: default=%d max=%d", c.Paging.DefaultPageSize, c.Paging.MaxPageSize)
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
