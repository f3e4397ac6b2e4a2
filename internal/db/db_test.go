package db

import (
	"path/filepath"
	"testing"

	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/model"
)

// 测试内容：验证 sqlite 初始化会建库建表，且唯一约束被翻译为 ErrDuplicatedKey。
func TestInitDB_Sqlite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RECIPE_HUB_SERVER_MODE", "debug")
	t.Setenv("RECIPE_HUB_JWT_SECRET", "test_secret")
	t.Setenv("RECIPE_HUB_DATABASE_TYPE", "sqlite")
	t.Setenv("RECIPE_HUB_DATABASE_FILENAME", filepath.Join(dir, "data", "test.db"))
	config.InitConfig(dir)

	old := DB
	t.Cleanup(func() { DB = old })

	InitDB()
	if DB == nil {
		t.Fatal("期望 DB 已初始化")
	}

	tag := model.Tag{Name: "早餐", Color: "#ff0000", Slug: "breakfast"}
	if err := DB.Create(&tag).Error; err != nil {
		t.Fatalf("建表后写入失败: %v", err)
	}

	dup := model.Tag{Name: "早餐", Color: "#00ff00", Slug: "breakfast2"}
	if err := DB.Create(&dup).Error; err == nil {
		t.Fatal("期望唯一约束冲突")
	}
}
