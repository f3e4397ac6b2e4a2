package model

import "time"

// Recipe 菜谱，(name, author_id) 组合唯一
// 删除菜谱时级联清理食材行与标签关联
type Recipe struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time          `json:"-"`
	AuthorID    uint               `json:"author_id" gorm:"not null;index;uniqueIndex:idx_recipe_name_author"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE;"`
	Name        string             `json:"name" gorm:"not null;size:256;uniqueIndex:idx_recipe_name_author"`
	Image       string             `json:"image" gorm:"not null"` // 存储的相对路径
	Text        string             `json:"text" gorm:"not null"`
	CookingTime int                `json:"cooking_time" gorm:"not null"` // 分钟
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID"`
	Tags        []Tag              `json:"-" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
}

// RecipeIngredient 菜谱内的一行食材用量，(recipe_id, ingredient_id) 组合唯一
// 生命周期完全跟随所属菜谱：更新菜谱时整组删除重建，不做单行修改
type RecipeIngredient struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RecipeID     uint       `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Recipe       Recipe     `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE;"`
	IngredientID uint       `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE;"`
	Amount       int        `json:"amount" gorm:"not null"`
}
