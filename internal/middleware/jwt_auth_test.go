package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withTestJWTConfig(t *testing.T) {
	t.Helper()
	old := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "test",
	})
	t.Cleanup(func() { SetJWTConfig(old) })
}

func TestGenerateAndParseToken(t *testing.T) {
	withTestJWTConfig(t)
	userID := uuid.New()

	access, refresh, err := GenerateTokenPair(userID, "leader")
	require.NoError(t, err)

	claims, err := ParseTokenOfType(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, SupabaseRole, claims.Role)
	assert.Equal(t, "leader", claims.AppRole)
	assert.Contains(t, claims.Audience, SupabaseAudience)

	_, err = ParseTokenOfType(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = ParseTokenOfType(refresh, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	withTestJWTConfig(t)
	token, err := GenerateAccessToken(uuid.New(), "merchant")
	require.NoError(t, err)

	SetJWTConfig(&JWTConfig{SecretKey: "other", AccessTokenTTL: time.Hour})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	withTestJWTConfig(t)
	claims := &UserClaims{
		Role:      SupabaseRole,
		AppRole:   "merchant",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Audience:  jwt.ClaimStrings{SupabaseAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_BadSubject(t *testing.T) {
	withTestJWTConfig(t)
	claims := &UserClaims{
		Role:      SupabaseRole,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Audience:  jwt.ClaimStrings{SupabaseAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	_, err := ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c).String(), "role": GetUserRole(c)})
	})
	r.GET("/merchant", JWTAuth(), RequireRole("merchant"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/optional", OptionalAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c).String())
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	withTestJWTConfig(t)
	r := newAuthRouter()
	userID := uuid.New()
	access, refresh, _ := GenerateTokenPair(userID, "leader")

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", refresh).Code, "refresh token 不能访问接口")

	w := doGet(r, "/me", access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())

	assert.Equal(t, http.StatusForbidden, doGet(r, "/merchant", access).Code)

	merchantToken, _ := GenerateAccessToken(uuid.New(), "merchant")
	assert.Equal(t, http.StatusOK, doGet(r, "/merchant", merchantToken).Code)
}

func TestOptionalAuth(t *testing.T) {
	withTestJWTConfig(t)
	r := newAuthRouter()

	w := doGet(r, "/optional", "")
	assert.Equal(t, uuid.Nil.String(), w.Body.String())

	userID := uuid.New()
	token, _ := GenerateAccessToken(userID, "influencer")
	w = doGet(r, "/optional", token)
	assert.Equal(t, userID.String(), w.Body.String())
}
