package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/controller"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
	"yuntuke_server/internal/service"
	"yuntuke_server/internal/testutil"
	"yuntuke_server/pkg/cache"
	"yuntuke_server/pkg/supabase"
	"yuntuke_server/pkg/wechat"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

// ==================== 测试辅助 ====================

type staticExchanger struct{}

func (staticExchanger) Code2Session(_ context.Context, code string) (*wechat.Session, error) {
	return &wechat.Session{OpenID: "openid-" + code, SessionKey: "sk"}, nil
}

type server struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newServer(t *testing.T, devLogin bool) *server {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := zaptest.NewLogger(t)
	store := cache.NewMemory()
	pub := event.NewLogPublisher(log)

	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	collections := repository.NewCollectionRepository(db)
	samples := repository.NewSampleRepository(db)
	rels := repository.NewRelationshipRepository(db)

	ctl := &Controllers{
		Auth:         controller.NewAuthController(service.NewAuthService(users, staticExchanger{}, store, pub, log, devLogin)),
		User:         controller.NewUserController(service.NewUserService(users, products, orders, collections, samples, rels)),
		Product:      controller.NewProductController(service.NewProductService(products, log)),
		Order:        controller.NewOrderController(service.NewOrderService(orders, products, users, rels, pub, log)),
		Collection:   controller.NewCollectionController(service.NewCollectionService(collections, products, log)),
		Sample:       controller.NewSampleController(service.NewSampleService(samples, products, pub, log)),
		Relationship: controller.NewRelationshipController(service.NewRelationshipService(users, rels, orders, pub, log)),
		Influencer:   controller.NewInfluencerController(service.NewInfluencerService(users, orders, rels)),
		Health:       controller.NewHealthController(db, supabase.NewClient("", ""), store),
	}

	r := gin.New()
	InitRoutes(r, ctl, Options{
		Log:            log,
		Cooldown:       middleware.NewCooldownLimiter(store),
		LoginLimiter:   middleware.NewIPRateLimiter(time.Millisecond, 100),
		EnableDevLogin: devLogin,
	})
	return &server{db: db, engine: r}
}

func (s *server) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) token(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := middleware.GenerateAccessToken(u.ID, u.Role)
	require.NoError(t, err)
	return token
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func address() dto.AddressRequest {
	return dto.AddressRequest{
		Name:     "赵六",
		Phone:    "13600136000",
		Province: "北京市",
		City:     "北京市",
		Detail:   "中关村大街 1 号",
	}
}

// ==================== 路由测试 ====================

func TestHealthAndSwagger(t *testing.T) {
	s := newServer(t, false)

	for _, path := range []string{"/health", "/health/ping", "/health/version"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := s.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDevLoginOnlyInDevelopment(t *testing.T) {
	body := dto.DevLoginRequest{OpenID: "dev-1", Role: model.RoleMerchant}

	w := newServer(t, false).do(http.MethodPost, "/api/v1/auth/dev/login", "", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	s := newServer(t, true)
	w = s.do(http.MethodPost, "/api/v1/auth/dev/login", "", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens dto.TokenResponse
	dataOf(t, w, &tokens)
	assert.NotEmpty(t, tokens.AccessToken)

	w = s.do(http.MethodGet, "/api/v1/users/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWechatLoginAndRefresh(t *testing.T) {
	s := newServer(t, false)

	w := s.do(http.MethodPost, "/api/v1/auth/wechat/login", "", dto.WechatLoginRequest{Code: "abc", Role: model.RoleLeader})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokens dto.TokenResponse
	dataOf(t, w, &tokens)
	assert.True(t, tokens.IsNewUser)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// refresh token 不能当 access token 用
	w = s.do(http.MethodGet, "/api/v1/users/me", tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGating(t *testing.T) {
	s := newServer(t, false)
	merchant := testutil.CreateUser(t, s.db, model.RoleMerchant)
	leader := testutil.CreateUser(t, s.db, model.RoleLeader)
	influencer := testutil.CreateUser(t, s.db, model.RoleInfluencer)

	tests := []struct {
		name   string
		method string
		path   string
		user   *model.User
		status int
	}{
		{"达人不能发布商品", http.MethodPost, "/api/v1/products", influencer, http.StatusForbidden},
		{"商家查看商品统计", http.MethodGet, "/api/v1/products/stats", merchant, http.StatusOK},
		{"团长不能看商品统计", http.MethodGet, "/api/v1/products/stats", leader, http.StatusForbidden},
		{"商家不能建选品集", http.MethodPost, "/api/v1/collections", merchant, http.StatusForbidden},
		{"达人不能取邀请码", http.MethodGet, "/api/v1/relationships/invite-code", influencer, http.StatusForbidden},
		{"团长取邀请码", http.MethodGet, "/api/v1/relationships/invite-code", leader, http.StatusOK},
		{"团长不能绑定团长", http.MethodPost, "/api/v1/relationships/bind", leader, http.StatusForbidden},
		{"商家不能申请样品", http.MethodPost, "/api/v1/samples", merchant, http.StatusForbidden},
		{"未登录看订单", http.MethodGet, "/api/v1/orders", nil, http.StatusUnauthorized},
		{"团长查看选品集统计", http.MethodGet, "/api/v1/collections/statistics", leader, http.StatusOK},
		{"达人不能看选品集统计", http.MethodGet, "/api/v1/collections/statistics", influencer, http.StatusForbidden},
		{"团长查看团队统计", http.MethodGet, "/api/v1/relationships/statistics?days=7", leader, http.StatusOK},
		{"达人不能看团队统计", http.MethodGet, "/api/v1/relationships/statistics", influencer, http.StatusForbidden},
		{"统计天数越界", http.MethodGet, "/api/v1/relationships/statistics?days=400", leader, http.StatusBadRequest},
		{"达人查看样品统计", http.MethodGet, "/api/v1/samples/statistics/overview", influencer, http.StatusOK},
		{"商家查看样品统计", http.MethodGet, "/api/v1/samples/statistics/overview", merchant, http.StatusOK},
		{"未登录看样品统计", http.MethodGet, "/api/v1/samples/statistics/overview", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ""
			if tt.user != nil {
				token = s.token(t, tt.user)
			}
			w := s.do(tt.method, tt.path, token, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	s := newServer(t, false)
	merchant := testutil.CreateUser(t, s.db, model.RoleMerchant)
	p := testutil.CreateProduct(t, s.db, merchant.ID, "15.00", 3)

	for _, path := range []string{
		"/api/v1/products",
		"/api/v1/products/" + p.ID.String(),
		"/api/v1/products/categories/list",
		"/api/v1/collections",
		"/api/v1/influencers",
	} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestInviteRefreshCooldown(t *testing.T) {
	s := newServer(t, false)
	leader := testutil.CreateUser(t, s.db, model.RoleLeader)
	token := s.token(t, leader)

	w := s.do(http.MethodPost, "/api/v1/relationships/invite-code/refresh", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/relationships/invite-code/refresh", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestBindAndTeam(t *testing.T) {
	s := newServer(t, false)
	leader := testutil.CreateUser(t, s.db, model.RoleLeader)
	influencer := testutil.CreateUser(t, s.db, model.RoleInfluencer)

	w := s.do(http.MethodGet, "/api/v1/relationships/invite-code", s.token(t, leader), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var code dto.InviteCodeResponse
	dataOf(t, w, &code)

	w = s.do(http.MethodPost, "/api/v1/relationships/bind", s.token(t, influencer), dto.BindLeaderRequest{InviteCode: code.InviteCode})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/relationships/team", s.token(t, leader), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var team dto.PageResult[dto.TeamMember]
	dataOf(t, w, &team)
	require.Equal(t, int64(1), team.Total)

	w = s.do(http.MethodGet, "/api/v1/relationships/leader", s.token(t, influencer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info dto.LeaderInfo
	dataOf(t, w, &info)
	assert.Equal(t, leader.ID, info.Leader.ID)

	w = s.do(http.MethodDelete, "/api/v1/relationships/"+team.List[0].RelationshipID.String(), s.token(t, influencer), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSampleCreateCooldown(t *testing.T) {
	s := newServer(t, false)
	merchant := testutil.CreateUser(t, s.db, model.RoleMerchant)
	influencer := testutil.CreateUser(t, s.db, model.RoleInfluencer)
	p1 := testutil.CreateProduct(t, s.db, merchant.ID, "50.00", 3)
	p2 := testutil.CreateProduct(t, s.db, merchant.ID, "60.00", 3)
	token := s.token(t, influencer)

	w := s.do(http.MethodPost, "/api/v1/samples", token, dto.CreateSampleRequest{ProductID: p1.ID, ShippingAddress: address()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/samples", token, dto.CreateSampleRequest{ProductID: p2.ID, ShippingAddress: address()})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = s.do(http.MethodGet, "/api/v1/samples?box=received", s.token(t, merchant), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.PageResult[model.SampleRequest]
	dataOf(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestCollectionRoutes(t *testing.T) {
	s := newServer(t, false)
	leader := testutil.CreateUser(t, s.db, model.RoleLeader)
	merchant := testutil.CreateUser(t, s.db, model.RoleMerchant)
	a := testutil.CreateProduct(t, s.db, merchant.ID, "10.00", 1)
	b := testutil.CreateProduct(t, s.db, merchant.ID, "20.00", 1)
	token := s.token(t, leader)

	w := s.do(http.MethodPost, "/api/v1/collections", token, dto.CreateCollectionRequest{Name: "夏季爆款"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c model.Collection
	dataOf(t, w, &c)
	base := "/api/v1/collections/" + c.ID.String()

	var items []model.CollectionItem
	for _, p := range []*model.Product{a, b} {
		w = s.do(http.MethodPost, base+"/items", token, dto.AddCollectionItemRequest{ProductID: p.ID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var item model.CollectionItem
		dataOf(t, w, &item)
		items = append(items, item)
	}

	// /items/order 与 /items/:item_id 不冲突
	w = s.do(http.MethodPut, base+"/items/order", token, dto.ReorderItemsRequest{
		ItemIDs: []uuid.UUID{items[1].ID, items[0].ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dataOf(t, w, &c)
	require.Len(t, c.Items, 2)
	assert.Equal(t, b.ID, c.Items[0].ProductID)
}

func TestAdjustStockRoute(t *testing.T) {
	s := newServer(t, false)
	merchant := testutil.CreateUser(t, s.db, model.RoleMerchant)
	other := testutil.CreateUser(t, s.db, model.RoleMerchant)
	p := testutil.CreateProduct(t, s.db, merchant.ID, "15.00", 3)
	path := "/api/v1/products/" + p.ID.String() + "/stock"

	w := s.do(http.MethodPatch, path, s.token(t, merchant), dto.AdjustStockRequest{QuantityChange: 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got model.Product
	dataOf(t, w, &got)
	assert.Equal(t, 8, got.Stock)

	w = s.do(http.MethodPatch, path, s.token(t, merchant), dto.AdjustStockRequest{QuantityChange: -9})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, path, s.token(t, other), dto.AdjustStockRequest{QuantityChange: 1})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}
