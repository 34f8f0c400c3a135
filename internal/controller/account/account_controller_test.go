package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examguard/config"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/middleware"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/lshigami/examguard/internal/service"
	"github.com/lshigami/examguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newRouterWithTTL(t, time.Hour)
}

func newRouterWithTTL(t *testing.T, ttl time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.Auth{JWTSecret: "account-secret", SessionTTL: ttl}}
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "student", "secret1", false)

	tokens := auth.NewTokenManager(cfg)
	ctrl := NewAccountController(service.NewAuthService(repository.NewUserRepository(db), tokens), tokens, cfg)
	r := gin.New()
	r.GET("/login", ctrl.LoginForm)
	r.POST("/login", ctrl.Login)
	r.Any("/logout", ctrl.Logout)
	return r
}

func post(r *gin.Engine, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginWithForm(t *testing.T) {
	r := newRouter(t)
	form := url.Values{"username": {"student"}, "password": {"secret1"}}

	w := post(r, "/login?next=/test/3/start", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/test/3/start", resp.Redirect)
	assert.False(t, resp.IsSuperuser)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestLoginCookieFollowsDefaultTokenTTL(t *testing.T) {
	r := newRouterWithTTL(t, 0)
	form := url.Values{"username": {"student"}, "password": {"secret1"}}

	w := post(r, "/login", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, 86400, cookie.MaxAge)
}

func TestLoginWithJSONAndOffsiteNext(t *testing.T) {
	r := newRouter(t)

	w := post(r, "/login?next=//evil.example", "application/json", `{"username":"student","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/tests", resp.Redirect)
}

func TestLoginFailures(t *testing.T) {
	r := newRouter(t)

	w := post(r, "/login", "application/json", `{"username":"student","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())
	assert.Nil(t, sessionCookie(w))

	w = post(r, "/login", "application/json", `{"username":"student"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
