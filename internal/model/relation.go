package model

import "time"

// 三张关系表共享同一套约束策略：
// 组合唯一索引是重复检测的唯一仲裁者，插入冲突即视为"已存在"

// Follow 关注关系，(user_id, author_id) 组合唯一，禁止自关注（服务层校验）
type Follow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_user_author"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index;uniqueIndex:idx_follow_user_author"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE;"`
}

// Favorite 收藏标记，(user_id, recipe_id) 组合唯一
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	Recipe    Recipe    `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE;"`
}

// ShoppingListEntry 购物清单条目，(user_id, recipe_id) 组合唯一
// 清单聚合查询以此表为入口汇总食材用量
type ShoppingListEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_shopping_user_recipe"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_shopping_user_recipe"`
	Recipe    Recipe    `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE;"`
}
