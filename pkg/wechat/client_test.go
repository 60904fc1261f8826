package wechat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sns/jscode2session", r.URL.Path)
		assert.Equal(t, "app", r.URL.Query().Get("appid"))
		assert.Equal(t, "secret", r.URL.Query().Get("secret"))
		assert.Equal(t, "authorization_code", r.URL.Query().Get("grant_type"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCode2Session_Success(t *testing.T) {
	srv := newTestServer(t, `{"openid":"o-123","session_key":"sk","unionid":"u-1"}`)
	c := NewClient(Config{AppID: "app", AppSecret: "secret", BaseURL: srv.URL})

	sess, err := c.Code2Session(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "o-123", sess.OpenID)
	assert.Equal(t, "u-1", sess.UnionID)
}

func TestCode2Session_APIError(t *testing.T) {
	srv := newTestServer(t, `{"errcode":40029,"errmsg":"invalid code"}`)
	c := NewClient(Config{AppID: "app", AppSecret: "secret", BaseURL: srv.URL})

	_, err := c.Code2Session(context.Background(), "bad")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 40029, apiErr.Code)
}

func TestCode2Session_NotConfigured(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.Code2Session(context.Background(), "code")
	assert.ErrorIs(t, err, ErrNotConfigured)

	c = NewClient(Config{AppID: "app", AppSecret: "secret"})
	_, err = c.Code2Session(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyCode)
}
