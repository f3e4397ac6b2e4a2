package service

import (
	"strings"
	"testing"
)

// 测试内容：验证食材列表的前缀过滤不区分大小写。
func TestListIngredients_PrefixFilter(t *testing.T) {
	setupTestDB(t)
	createTestIngredient(t, "Flour", "g")
	createTestIngredient(t, "flaxseed", "g")
	createTestIngredient(t, "Sugar", "g")

	items, err := ListIngredients("fl")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("期望前缀 fl 匹配 2 项，实际为 %d", len(items))
	}

	all, err := ListIngredients("")
	if err != nil || len(all) != 3 {
		t.Fatalf("期望空过滤返回全部: len=%d err=%v", len(all), err)
	}
}

// 测试内容：验证同名不同单位的食材可以共存。
func TestIngredientNameUnitUnique(t *testing.T) {
	setupTestDB(t)
	createTestIngredient(t, "牛奶", "毫升")
	createTestIngredient(t, "牛奶", "杯")

	items, err := ListIngredients("牛奶")
	if err != nil || len(items) != 2 {
		t.Fatalf("期望同名不同单位共存: len=%d err=%v", len(items), err)
	}
}

// 测试内容：验证 CSV 导入跳过已存在的组合并统计新增行数。
func TestImportIngredientsCSV(t *testing.T) {
	setupTestDB(t)
	createTestIngredient(t, "盐", "克")

	csvData := "盐,克\n酱油,毫升\n醋,毫升\n"
	imported, err := ImportIngredientsCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if imported != 2 {
		t.Fatalf("期望新增 2 行（盐已存在跳过），实际为 %d", imported)
	}

	// 空字段报错
	if _, err := ImportIngredientsCSV(strings.NewReader("胡椒,\n")); err == nil {
		t.Fatal("期望空单位行报错")
	}
}
