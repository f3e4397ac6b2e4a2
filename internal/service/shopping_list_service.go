package service

import (
	"fmt"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"strings"
	"time"
)

// ShoppingListItem 购物清单里的一行聚合结果。
// 同名食材按 (名称, 计量单位) 分组，跨菜谱的用量求和。
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

// AggregateShoppingList 汇总用户购物清单中所有菜谱的食材用量。
func AggregateShoppingList(userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := db.DB.Model(&model.ShoppingListEntry{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_list_entries.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_list_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderShoppingList 把聚合结果渲染为可下载的纯文本。
// 清单为空时拒绝下载。
func RenderShoppingList(userID uint) (string, error) {
	items, err := AggregateShoppingList(userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", common.NewValidationError("购物清单是空的")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "购物清单 (%s)\n\n", time.Now().Format("2006-01-02"))
	for _, item := range items {
		fmt.Fprintf(&b, "%s - %d (%s)\n", item.Name, item.Total, item.MeasurementUnit)
	}
	return b.String(), nil
}
