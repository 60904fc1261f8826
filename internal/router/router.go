package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"yuntuke_server/internal/controller"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/model"

	_ "yuntuke_server/docs"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth         *controller.AuthController
	User         *controller.UserController
	Product      *controller.ProductController
	Order        *controller.OrderController
	Collection   *controller.CollectionController
	Sample       *controller.SampleController
	Relationship *controller.RelationshipController
	Influencer   *controller.InfluencerController
	Health       *controller.HealthController
}

// Options 路由中间件配置
type Options struct {
	Log          *zap.Logger
	CORSOrigins  []string
	Cooldown     *middleware.CooldownLimiter
	LoginLimiter *middleware.IPRateLimiter
	// EnableDevLogin 仅开发环境注册 /auth/dev/login
	EnableDevLogin bool
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, opts Options) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(opts.CORSOrigins),
	)

	// 1. 健康检查与 Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/health", ctl.Health.Health)
	r.GET("/health/ping", ctl.Health.Ping)
	r.GET("/health/version", ctl.Health.Version)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api/v1")

	// 登录相关，按 IP 限流
	auth := api.Group("/auth")
	{
		loginLimit := middleware.LoginRateLimit(opts.LoginLimiter)

		// POST /api/v1/auth/wechat/login
		auth.POST("/wechat/login", loginLimit, ctl.Auth.WechatLogin)
		auth.POST("/refresh", loginLimit, ctl.Auth.RefreshToken)
		if opts.EnableDevLogin {
			auth.POST("/dev/login", loginLimit, ctl.Auth.DevLogin)
		}
	}

	// 可匿名访问的接口，登录后可见范围更大
	public := api.Group("")
	public.Use(middleware.OptionalAuth(), middleware.AuditContext())
	{
		public.GET("/products", ctl.Product.GetProducts)
		public.GET("/products/categories/list", ctl.Product.GetCategories)
		public.GET("/collections", ctl.Collection.GetCollections)
		public.GET("/collections/:id", ctl.Collection.GetCollection)
		public.GET("/influencers", ctl.Influencer.GetInfluencers)
		public.GET("/influencers/:id", ctl.Influencer.GetInfluencer)
	}

	// 以下接口都需要登录
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(), middleware.AuditContext())

	requireMerchant := middleware.RequireRole(model.RoleMerchant)
	requireLeader := middleware.RequireRole(model.RoleLeader)
	requireInfluencer := middleware.RequireRole(model.RoleInfluencer)

	// users 用户
	users := authed.Group("/users")
	{
		users.GET("/me", ctl.User.GetMe)
		users.PUT("/me", ctl.User.UpdateMe)
		users.GET("/me/stats", ctl.User.GetStats)
		users.GET("/:id", ctl.User.GetUser)
	}

	// products 商品，/stats 需在 /:id 之前注册
	products := authed.Group("/products")
	{
		products.GET("/stats", requireMerchant, ctl.Product.GetProductStats)
		products.POST("", requireMerchant, ctl.Product.CreateProduct)
		products.PUT("/:id", requireMerchant, ctl.Product.UpdateProduct)
		products.PATCH("/:id/status", requireMerchant, ctl.Product.UpdateProductStatus)
		products.PATCH("/:id/stock", requireMerchant, ctl.Product.AdjustStock)
		products.DELETE("/:id", requireMerchant, ctl.Product.DeleteProduct)
	}
	// 商品详情匿名可看，但不能与 /products/stats 冲突
	public.GET("/products/:id", ctl.Product.GetProduct)

	// orders 订单
	orders := authed.Group("/orders")
	{
		orders.POST("", ctl.Order.CreateOrder)
		orders.GET("", ctl.Order.GetOrders)
		orders.GET("/stats", ctl.Order.GetOrderStats)
		orders.GET("/:id", ctl.Order.GetOrder)
		orders.PATCH("/:id/status", ctl.Order.UpdateOrderStatus)
	}

	// collections 选品集，写操作仅团长
	collections := authed.Group("/collections", requireLeader)
	{
		collections.GET("/statistics", ctl.Collection.GetStatistics)
		collections.POST("", ctl.Collection.CreateCollection)
		collections.PUT("/:id", ctl.Collection.UpdateCollection)
		collections.DELETE("/:id", ctl.Collection.DeleteCollection)
		collections.POST("/:id/items", ctl.Collection.AddItem)
		collections.PUT("/:id/items/order", ctl.Collection.ReorderItems)
		collections.PUT("/:id/items/:item_id", ctl.Collection.UpdateItem)
		collections.DELETE("/:id/items/:item_id", ctl.Collection.RemoveItem)
	}

	// relationships 团长与达人
	rel := authed.Group("/relationships")
	{
		rel.GET("/invite-code", requireLeader, ctl.Relationship.GetInviteCode)
		rel.POST("/invite-code/refresh", requireLeader,
			middleware.Cooldown(opts.Cooldown, middleware.ActionInviteRefresh, 0, log),
			ctl.Relationship.RefreshInviteCode)
		rel.GET("/team", requireLeader, ctl.Relationship.GetTeam)
		rel.GET("/statistics", requireLeader, ctl.Relationship.GetStatistics)
		rel.POST("/bind", requireInfluencer, ctl.Relationship.Bind)
		rel.GET("/leader", requireInfluencer, ctl.Relationship.GetLeader)
		rel.DELETE("/:id", ctl.Relationship.Unbind)
	}

	// samples 样品申请
	samples := authed.Group("/samples")
	{
		samples.POST("", middleware.RequireRole(model.RoleInfluencer, model.RoleLeader),
			middleware.Cooldown(opts.Cooldown, middleware.ActionSampleCreate, 0, log),
			ctl.Sample.CreateSample)
		samples.GET("", ctl.Sample.GetSamples)
		samples.GET("/statistics/overview", ctl.Sample.GetOverview)
		samples.GET("/:id", ctl.Sample.GetSample)
		samples.PATCH("/:id/status", ctl.Sample.UpdateSampleStatus)
	}
}
