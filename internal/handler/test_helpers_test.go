package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"recipe-hub-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// 1x1 透明 GIF
const testImageDataURI = "data:image/gif;base64,R0lGODlhAQABAIAAAP///wAAACH5BAEAAAAALAAAAAABAAEAAAICRAEAOw=="

func setupTestDB(t *testing.T) {
	t.Helper()
	testutils.SetupDB(t)
}

// fakeAuth 模拟认证中间件，直接往上下文里写入登录态。
func fakeAuth(uid uint, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("id", uid)
		c.Set("username", "tester")
		c.Set("admin", admin)
		c.Next()
	}
}

func createTestUser(t *testing.T, username string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("abc12345"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt 失败: %v", err)
	}
	user := model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Status:   model.UserStatusNormal,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return &user
}

func createTestTag(t *testing.T, name, color, slug string) *model.Tag {
	t.Helper()
	tag := model.Tag{Name: name, Color: color, Slug: slug}
	if err := db.DB.Create(&tag).Error; err != nil {
		t.Fatalf("创建测试标签失败: %v", err)
	}
	return &tag
}

func createTestIngredient(t *testing.T, name, unit string) *model.Ingredient {
	t.Helper()
	ing := model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.DB.Create(&ing).Error; err != nil {
		t.Fatalf("创建测试食材失败: %v", err)
	}
	return &ing
}

func createTestRecipe(t *testing.T, authorID uint, name string) *model.Recipe {
	t.Helper()
	recipe := model.Recipe{
		Name:        name,
		Text:        "做法步骤",
		Image:       "placeholder.gif",
		CookingTime: 15,
		AuthorID:    authorID,
	}
	if err := db.DB.Create(&recipe).Error; err != nil {
		t.Fatalf("创建测试菜谱失败: %v", err)
	}
	return &recipe
}

func dbCreateRecipeIngredient(recipeID, ingredientID uint, amount int) error {
	return db.DB.Create(&model.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
	}).Error
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v body=%s", err, w.Body.String())
	}
	return resp
}
