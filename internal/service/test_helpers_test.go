package service

import (
	"fmt"
	"testing"

	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"recipe-hub-server/internal/testutils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 1x1 像素 GIF，菜谱/头像上传测试用
const testImageDataURI = "data:image/gif;base64,R0lGODlhAQABAIAAAP///wAAACH5BAEAAAAALAAAAAABAAEAAAICRAEAOw=="

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutils.SetupDB(t)
}

func createTestUser(t *testing.T, username string) *model.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("abc12345"), bcrypt.DefaultCost)
	u := model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Status:   model.UserStatusNormal,
	}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func createTestTag(t *testing.T, name, color, slug string) *model.Tag {
	t.Helper()
	tag := model.Tag{Name: name, Color: color, Slug: slug}
	if err := db.DB.Create(&tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return &tag
}

func createTestIngredient(t *testing.T, name, unit string) *model.Ingredient {
	t.Helper()
	ing := model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.DB.Create(&ing).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return &ing
}

// createTestRecipe 直接写库构造菜谱，绕过图片落盘
func createTestRecipe(t *testing.T, authorID uint, name string, ingredients map[uint]int) *model.Recipe {
	t.Helper()
	r := model.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       fmt.Sprintf("%s.gif", name),
		Text:        "做法略",
		CookingTime: 30,
	}
	if err := db.DB.Create(&r).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	for ingID, amount := range ingredients {
		row := model.RecipeIngredient{RecipeID: r.ID, IngredientID: ingID, Amount: amount}
		if err := db.DB.Create(&row).Error; err != nil {
			t.Fatalf("create recipe ingredient: %v", err)
		}
	}
	return &r
}
