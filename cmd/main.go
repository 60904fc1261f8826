package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/config"
	"yuntuke_server/internal/controller"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/repository"
	"yuntuke_server/internal/router"
	"yuntuke_server/internal/service"
	"yuntuke_server/internal/task"
	"yuntuke_server/pkg/cache"
	"yuntuke_server/pkg/database"
	"yuntuke_server/pkg/logger"
	"yuntuke_server/pkg/supabase"
	"yuntuke_server/pkg/wechat"
)

// @title 云推客严选 API
// @version 1.0
// @description 商家、团长、达人三方分销平台后端
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("服务异常退出", zap.Error(err))
	}
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Cache       cache.Cache
	Publisher   event.Publisher
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Product      repository.ProductRepository
	Order        repository.OrderRepository
	Collection   repository.CollectionRepository
	Sample       repository.SampleRepository
	Relationship repository.RelationshipRepository
}

// Services 服务集合
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Product      *service.ProductService
	Order        *service.OrderService
	Collection   *service.CollectionService
	Sample       *service.SampleService
	Relationship *service.RelationshipService
	Influencer   *service.InfluencerService
}

// ==================== 启动流程 ====================

func run(cfg *config.Config, zlog *zap.Logger) error {
	// 3. 全局组件
	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("注册校验器失败: %w", err)
	}
	repository.SetPageLimits(cfg.Paging.DefaultPageSize, cfg.Paging.MaxPageSize)
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 4. 数据库
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return err
	}

	// 5. 依赖
	deps, err := initDependencies(cfg, db, zlog)
	if err != nil {
		return err
	}
	defer func() {
		_ = deps.Publisher.Close()
		_ = deps.Cache.Close()
	}()

	// 6. 定时任务
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		Orders: deps.Services.Order,
		Log:    zlog,
	}, &task.TaskManagerConfig{
		OrderTimeoutEnabled: true,
		OrderTimeoutCron:    cfg.Order.TimeoutCron,
		OrderPayTimeout:     cfg.Order.PayTimeout,
		OrderBatchSize:      100,
	})
	if err := tm.Start(); err != nil {
		return fmt.Errorf("定时任务启动失败: %w", err)
	}
	defer tm.Stop()

	// 7. 路由
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	router.InitRoutes(r, deps.Controllers, router.Options{
		Log:            zlog,
		CORSOrigins:    cfg.App.CORSAllowedOrigins,
		Cooldown:       middleware.NewCooldownLimiter(deps.Cache),
		LoginLimiter:   middleware.NewIPRateLimiter(time.Second, 10),
		EnableDevLogin: cfg.IsDevelopment(),
	})

	// 8. 启动服务
	return startServer(r, cfg.App.Port, zlog)
}

// ==================== 初始化函数 ====================

// initDatabase 连接数据库并按需执行迁移
func initDatabase(cfg *config.Config, zlog *zap.Logger) (*gorm.DB, error) {
	db, err := database.InitDB(database.Options{
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		LogLevel:     cfg.Database.LogLevel,
	}, zlog)
	if err != nil {
		return nil, err
	}

	if err := middleware.RegisterAuditCallbacks(db, zlog); err != nil {
		return nil, fmt.Errorf("注册审计回调失败: %w", err)
	}

	if cfg.Database.AutoMigrate {
		migrator, err := database.NewEmbeddedMigrator(db, zlog)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := migrator.Up(ctx)
		if err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		zlog.Info("数据库迁移完成", zap.Int("applied", n))
	}
	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zlog *zap.Logger) (*Dependencies, error) {
	// -------- 基础设施 --------
	store, err := cache.New(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("缓存初始化失败: %w", err)
	}
	publisher := event.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, zlog)

	wx := wechat.NewClient(wechat.Config{
		AppID:     cfg.WeChat.AppID,
		AppSecret: cfg.WeChat.AppSecret,
		BaseURL:   cfg.WeChat.APIBaseURL,
	})
	sb := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)

	// -------- Repo 层 --------
	repos := &Repositories{
		User:         repository.NewUserRepository(db),
		Product:      repository.NewProductRepository(db),
		Order:        repository.NewOrderRepository(db),
		Collection:   repository.NewCollectionRepository(db),
		Sample:       repository.NewSampleRepository(db),
		Relationship: repository.NewRelationshipRepository(db),
	}

	// -------- 业务服务 --------
	services := &Services{
		Auth: service.NewAuthService(repos.User, wx, store, publisher, zlog, cfg.IsDevelopment()),
		User: service.NewUserService(
			repos.User, repos.Product, repos.Order,
			repos.Collection, repos.Sample, repos.Relationship,
		),
		Product: service.NewProductService(repos.Product, zlog),
		Order: service.NewOrderService(
			repos.Order, repos.Product, repos.User, repos.Relationship, publisher, zlog,
		),
		Collection:   service.NewCollectionService(repos.Collection, repos.Product, zlog),
		Sample:       service.NewSampleService(repos.Sample, repos.Product, publisher, zlog),
		Relationship: service.NewRelationshipService(repos.User, repos.Relationship, repos.Order, publisher, zlog),
		Influencer:   service.NewInfluencerService(repos.User, repos.Order, repos.Relationship),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:         controller.NewAuthController(services.Auth),
		User:         controller.NewUserController(services.User),
		Product:      controller.NewProductController(services.Product),
		Order:        controller.NewOrderController(services.Order),
		Collection:   controller.NewCollectionController(services.Collection),
		Sample:       controller.NewSampleController(services.Sample),
		Relationship: controller.NewRelationshipController(services.Relationship),
		Influencer:   controller.NewInfluencerController(services.Influencer),
		Health:       controller.NewHealthController(db, sb, store),
	}

	return &Dependencies{
		DB:          db,
		Cache:       store,
		Publisher:   publisher,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(r *gin.Engine, port string, zlog *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case sig := <-quit:
		zlog.Info("正在关闭服务", zap.String("signal", sig.String()))
	}

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}

	zlog.Info("服务已退出")
	return nil
}
