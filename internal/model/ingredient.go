package model

// Ingredient 食材，(name, measurement_unit) 组合唯一
// 同名食材允许以不同计量单位分别存在
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"not null;size:256;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"not null;size:200;uniqueIndex:idx_ingredient_name_unit"`
}
