package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"recipe-hub-server/internal/service"
	"recipe-hub-server/internal/testutils"
	"recipe-hub-server/internal/utils"

	"github.com/gin-gonic/gin"
)

func authTestRouter(authed gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", authed, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

// 测试内容：验证缺失/格式错误/非法 Token 的请求被拒绝，合法 Token 放行。
func TestJWTAuth(t *testing.T) {
	r := authTestRouter(JWTAuth())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无 Token 期望 401，实际为 %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("格式错误期望 401，实际为 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("非法 Token 期望 401，实际为 %d", w.Code)
	}

	token, err := utils.GenerateLoginToken(1, "alice", false, time.Hour)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("合法 Token 期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：验证已登出（黑名单）的 Token 被拒绝。
func TestJWTAuth_BlacklistedToken(t *testing.T) {
	r := authTestRouter(JWTAuth())

	token, err := utils.GenerateLoginToken(2, "bob", false, time.Hour)
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	service.BlacklistToken(token, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("黑名单 Token 期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证可选认证对匿名与带无效 Token 的请求都放行。
func TestOptionalJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/browse", OptionalJWTAuth(), func(c *gin.Context) {
		_, exists := c.Get("id")
		c.JSON(http.StatusOK, gin.H{"authed": exists})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/browse", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("匿名期望 200，实际为 %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("无效 Token 也应放行，实际为 %d", w.Code)
	}
}

// 测试内容：验证封禁用户被拦截，解除封禁并清缓存后恢复访问。
func TestUserStatusCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupDB(t)

	u := model.User{Username: "alice", Email: "a@example.com", Password: "x", Status: model.UserStatusBanned}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	r := gin.New()
	r.GET("/protected", func(c *gin.Context) { c.Set("id", u.ID); c.Next() }, UserStatusCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("封禁用户期望 403，实际为 %d", w.Code)
	}

	if err := db.DB.Model(&u).Update("status", model.UserStatusNormal).Error; err != nil {
		t.Fatalf("解封失败: %v", err)
	}
	ClearUserStatusCache(u.ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("解封后期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：验证管理员校验。
func TestAdminCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) { c.Set("admin", false); c.Next() }, AdminCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/admin-ok", func(c *gin.Context) { c.Set("admin", true); c.Next() }, AdminCheck(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("非管理员期望 403，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("管理员期望 200，实际为 %d", w.Code)
	}
}
