package handler

import (
	"net/http"
	"strconv"
	"testing"

	"recipe-hub-server/internal/service"

	"github.com/gin-gonic/gin"
)

func userRouter(uid uint) *gin.Engine {
	r := gin.New()
	g := r.Group("/users")
	g.GET("", ListUsers)
	g.GET("/:id", GetUser)

	authed := g.Group("", fakeAuth(uid, false))
	authed.GET("/me", GetSelfInfo)
	authed.POST("/set_password", UpdateSelfPassword)
	authed.PUT("/me/avatar", UpdateSelfAvatar)
	authed.DELETE("/me/avatar", DeleteSelfAvatar)
	authed.GET("/subscriptions", ListSubscriptions)
	authed.POST("/:id/subscribe", Subscribe)
	authed.DELETE("/:id/subscribe", Unsubscribe)
	return r
}

// 测试内容：验证匿名访问用户公开信息与用户列表。
func TestGetUserAndList(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	createTestUser(t, "bob")

	r := userRouter(0)

	w := doJSON(t, r, http.MethodGet, "/users/"+strconv.Itoa(int(user.ID)), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["username"] != "alice" {
		t.Fatalf("响应用户名异常: %v", resp)
	}
	if resp["is_subscribed"] != false {
		t.Fatalf("匿名访问 is_subscribed 应为 false: %v", resp)
	}

	w = doJSON(t, r, http.MethodGet, "/users/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("不存在的用户期望 404，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	resp = decodeBody(t, w)
	if resp["total"].(float64) != 2 {
		t.Fatalf("期望 2 个用户，实际为 %v", resp["total"])
	}
}

// 测试内容：验证修改密码后可用新密码登录。
func TestUpdateSelfPassword(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	r := userRouter(user.ID)

	w := doJSON(t, r, http.MethodPost, "/users/set_password", gin.H{
		"current_password": "abc12345",
		"new_password":     "newpass123",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("修改密码期望 204，实际为 %d body=%s", w.Code, w.Body.String())
	}

	if _, _, err := service.LoginUser("alice@example.com", "newpass123"); err != nil {
		t.Fatalf("新密码登录失败: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/users/set_password", gin.H{
		"current_password": "wrong",
		"new_password":     "another123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("当前密码错误期望 400，实际为 %d", w.Code)
	}
}

// 测试内容：验证头像上传、返回 URL 与删除。
func TestSelfAvatar(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	r := userRouter(user.ID)

	w := doJSON(t, r, http.MethodPut, "/users/me/avatar", gin.H{"avatar": testImageDataURI})
	if w.Code != http.StatusOK {
		t.Fatalf("上传头像期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	avatarURL, _ := resp["avatar"].(string)
	if avatarURL == "" {
		t.Fatal("期望返回头像 URL")
	}

	w = doJSON(t, r, http.MethodDelete, "/users/me/avatar", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("删除头像期望 204，实际为 %d", w.Code)
	}

	// 没有头像时再删一次是用户错误
	w = doJSON(t, r, http.MethodDelete, "/users/me/avatar", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("重复删除头像期望 400，实际为 %d", w.Code)
	}
}

// 测试内容：验证关注接口的状态码约定与订阅列表。
func TestSubscribeCycle(t *testing.T) {
	setupTestDB(t)
	viewer := createTestUser(t, "alice")
	author := createTestUser(t, "bob")
	createTestRecipe(t, author.ID, "招牌菜")

	r := userRouter(viewer.ID)
	path := "/users/" + strconv.Itoa(int(author.ID)) + "/subscribe"

	// 不能关注自己
	w := doJSON(t, r, http.MethodPost, "/users/"+strconv.Itoa(int(viewer.ID))+"/subscribe", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("关注自己期望 400，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, path, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("关注期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["is_subscribed"] != true {
		t.Fatalf("关注后 is_subscribed 应为 true: %v", resp)
	}

	w = doJSON(t, r, http.MethodPost, path, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("重复关注期望 400，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/users/subscriptions?recipes_limit=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("订阅列表期望 200，实际为 %d", w.Code)
	}
	resp = decodeBody(t, w)
	if resp["total"].(float64) != 1 {
		t.Fatalf("期望 1 个订阅，实际为 %v", resp["total"])
	}

	w = doJSON(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("取关期望 204，实际为 %d", w.Code)
	}
}
