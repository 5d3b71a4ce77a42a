package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"intergalactic/internal/config"
	"intergalactic/internal/logger"
	"intergalactic/pkg/auth"
	"intergalactic/pkg/response"
)

func TestMain(m *testing.M) {
	logger.InitLogger(&config.LogConfig{Level: "info"})
	os.Exit(m.Run())
}

func setupAuthConfig() {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret-key",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 7200,
			Issuer:               "test",
		},
	}
}

// newAdminRouter 挂一个受管理员中间件保护的路由，记录处理器是否被执行
func newAdminRouter(handled *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin-only", AdminAuth(), func(c *gin.Context) {
		*handled = true
		response.Success(c, "ok", nil)
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthRejectsNonAdmin(t *testing.T) {
	setupAuthConfig()
	auth.SetTokenBlacklist(nil)

	var handled bool
	r := newAdminRouter(&handled)

	pair, err := auth.GenerateTokenPair(1, "user")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	w := doRequest(t, r, pair.AccessToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("普通用户应得到403，得到%d", w.Code)
	}
	// 处理器不能被执行
	if handled {
		t.Fatalf("普通用户的请求不应进入处理器")
	}
}

func TestAdminAuthAllowsAdmin(t *testing.T) {
	setupAuthConfig()
	auth.SetTokenBlacklist(nil)

	var handled bool
	r := newAdminRouter(&handled)

	pair, err := auth.GenerateTokenPair(1, "admin")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	w := doRequest(t, r, pair.AccessToken)
	if w.Code != http.StatusOK {
		t.Fatalf("管理员应得到200，得到%d", w.Code)
	}
	if !handled {
		t.Fatalf("管理员的请求应进入处理器")
	}
}

func TestAdminAuthRejectsMissingOrWrongToken(t *testing.T) {
	setupAuthConfig()
	auth.SetTokenBlacklist(nil)

	var handled bool
	r := newAdminRouter(&handled)

	// 未携带令牌
	w := doRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无令牌应得到401，得到%d", w.Code)
	}

	// 刷新令牌不能访问管理接口
	pair, err := auth.GenerateTokenPair(1, "admin")
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	w = doRequest(t, r, pair.RefreshToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("刷新令牌应得到401，得到%d", w.Code)
	}
	if handled {
		t.Fatalf("未通过认证的请求不应进入处理器")
	}
}
