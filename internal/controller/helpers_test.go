package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
	"yuntuke_server/internal/service"
	"yuntuke_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

// ==================== 测试辅助 ====================

type ctlEnv struct {
	db     *gorm.DB
	engine *gin.Engine
	api    *gin.RouterGroup

	products *service.ProductService
	orders   *service.OrderService
}

func newCtlEnv(t *testing.T) *ctlEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := zaptest.NewLogger(t)
	pub := event.NewLogPublisher(log)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	r := gin.New()
	r.Use(gin.Recovery())

	return &ctlEnv{
		db:       db,
		engine:   r,
		api:      r.Group("/api/v1", middleware.OptionalAuth()),
		products: service.NewProductService(productRepo, log),
		orders: service.NewOrderService(
			orderRepo,
			productRepo,
			repository.NewUserRepository(db),
			repository.NewRelationshipRepository(db),
			pub,
			log,
		),
	}
}

func tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := middleware.GenerateAccessToken(u.ID, u.Role)
	require.NoError(t, err)
	return token
}

func doRequest(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope 解析统一响应，data 写入 out
type envelope struct {
	Code      int             `json:"code"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func testAddress() dto.AddressRequest {
	return dto.AddressRequest{
		Name:     "王五",
		Phone:    "13700137000",
		Province: "上海市",
		City:     "上海市",
		District: "浦东新区",
		Detail:   "世纪大道 8 号",
	}
}
