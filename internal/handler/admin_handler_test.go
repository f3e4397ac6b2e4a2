package handler

import (
	"net/http"
	"strconv"
	"testing"

	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"

	"github.com/gin-gonic/gin"
)

func adminRouter() *gin.Engine {
	r := gin.New()
	g := r.Group("/admin", fakeAuth(1, true))
	g.GET("/stats", GetServerStats)
	g.PATCH("/users/:id/status", UpdateUserStatus)
	return r
}

// 测试内容：验证统计接口返回核心计数。
func TestGetServerStats(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	createTestRecipe(t, alice.ID, "统计用菜谱")

	r := adminRouter()
	w := doJSON(t, r, http.MethodGet, "/admin/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["user_count"].(float64) != 1 {
		t.Fatalf("用户计数异常: %v", resp["user_count"])
	}
	if resp["recipe_count"].(float64) != 1 {
		t.Fatalf("菜谱计数异常: %v", resp["recipe_count"])
	}
}

// 测试内容：验证封禁/解封接口与管理员保护。
func TestUpdateUserStatus(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	admin := createTestUser(t, "boss")
	if err := db.DB.Model(admin).Update("admin", true).Error; err != nil {
		t.Fatalf("提升管理员失败: %v", err)
	}

	r := adminRouter()
	path := "/admin/users/" + strconv.Itoa(int(user.ID)) + "/status"

	w := doJSON(t, r, http.MethodPatch, path, gin.H{"status": model.UserStatusBanned})
	if w.Code != http.StatusOK {
		t.Fatalf("封禁期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	var got model.User
	if err := db.DB.First(&got, user.ID).Error; err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.Status != model.UserStatusBanned {
		t.Fatalf("期望状态为封禁，实际为 %d", got.Status)
	}

	// 管理员账号不允许封禁
	w = doJSON(t, r, http.MethodPatch, "/admin/users/"+strconv.Itoa(int(admin.ID))+"/status", gin.H{"status": model.UserStatusBanned})
	if w.Code != http.StatusForbidden {
		t.Fatalf("封禁管理员期望 403，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, path, gin.H{"status": 99})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法状态值期望 400，实际为 %d", w.Code)
	}
}
