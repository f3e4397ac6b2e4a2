package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/consts"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"strings"

	"gorm.io/gorm"
)

// ListIngredients 列出食材，name 非空时做大小写不敏感的前缀过滤。
// 食材是只读字典数据，量级可控，整表返回不分页。
func ListIngredients(name string) ([]model.Ingredient, error) {
	query := db.DB.Model(&model.Ingredient{})
	if name != "" {
		// sqlite/mysql 的 LIKE 默认不区分大小写，postgres 需要 lower 包一层
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(name)+"%")
	}

	var ingredients []model.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient 按 ID 获取食材。
func GetIngredient(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := db.DB.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("食材不存在")
		}
		return nil, err
	}
	return &ingredient, nil
}

// ImportIngredientsCSV 从 CSV 导入食材字典（管理员操作）。
// 每行格式为 "名称,计量单位"，已存在的 (名称, 单位) 组合跳过不报错。
// 返回新插入的行数。
func ImportIngredientsCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	imported := 0
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, common.NewValidationError(fmt.Sprintf("CSV 第 %d 行格式错误", line))
		}

		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			return imported, common.NewValidationError(fmt.Sprintf("CSV 第 %d 行名称或单位为空", line))
		}
		if len(name) > consts.MaxNameLength || len(unit) > consts.MaxMeasurementUnitLength {
			return imported, common.NewValidationError(fmt.Sprintf("CSV 第 %d 行字段过长", line))
		}

		ingredient := model.Ingredient{Name: name, MeasurementUnit: unit}
		if err := db.DB.Create(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ingredientsByIDs 批量查出食材并校验每个 ID 都存在。
func ingredientsByIDs(tx *gorm.DB, ids []uint) (map[uint]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := tx.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		found[ing.ID] = ing
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, common.NewValidationError(fmt.Sprintf("食材不存在 (id=%d)", id))
		}
	}
	return found, nil
}
