package service

import (
	"errors"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"

	"gorm.io/gorm"
)

// 收藏、购物清单、关注三种关系共用同一套写入策略：
// 不做"先查再插"，直接插入并把唯一索引冲突翻译成业务冲突。
// 这样并发双击也只会产生一条记录。

// AddFavorite 收藏菜谱，返回被收藏菜谱的精简视图。
func AddFavorite(userID, recipeID uint) (*ShortRecipeResponse, error) {
	recipe, err := GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	fav := model.Favorite{UserID: userID, RecipeID: recipeID}
	if err := db.DB.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("已收藏过该菜谱")
		}
		return nil, err
	}

	resp := BuildShortRecipeResponse(recipe)
	return &resp, nil
}

// RemoveFavorite 取消收藏。未收藏过时视为无效请求。
func RemoveFavorite(userID, recipeID uint) error {
	result := db.DB.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.NewValidationError("尚未收藏该菜谱")
	}
	return nil
}

// AddShoppingListEntry 把菜谱加入购物清单，返回精简视图。
func AddShoppingListEntry(userID, recipeID uint) (*ShortRecipeResponse, error) {
	recipe, err := GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	entry := model.ShoppingListEntry{UserID: userID, RecipeID: recipeID}
	if err := db.DB.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("菜谱已在购物清单中")
		}
		return nil, err
	}

	resp := BuildShortRecipeResponse(recipe)
	return &resp, nil
}

// RemoveShoppingListEntry 把菜谱移出购物清单。不在清单中时视为无效请求。
func RemoveShoppingListEntry(userID, recipeID uint) error {
	result := db.DB.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.ShoppingListEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.NewValidationError("菜谱不在购物清单中")
	}
	return nil
}

// FollowAuthor 关注作者，禁止自关注。
func FollowAuthor(userID, authorID uint) error {
	if userID == authorID {
		return common.NewValidationError("不能关注自己")
	}
	if _, err := GetUserByID(authorID); err != nil {
		return err
	}

	follow := model.Follow{UserID: userID, AuthorID: authorID}
	if err := db.DB.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.NewConflictError("已关注该作者")
		}
		return err
	}
	return nil
}

// UnfollowAuthor 取消关注。未关注过时视为无效请求。
func UnfollowAuthor(userID, authorID uint) error {
	result := db.DB.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&model.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.NewValidationError("尚未关注该作者")
	}
	return nil
}

// SubscriptionResponse 订阅列表里的一个作者，附带其最新菜谱。
type SubscriptionResponse struct {
	AuthorResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// ListSubscriptions 分页列出当前用户关注的作者，按关注时间倒序。
// recipesLimit 限制每个作者附带的菜谱条数，0 表示不限制。
func ListSubscriptions(userID uint, page, pageSize, recipesLimit int) ([]SubscriptionResponse, int64, error) {
	var total int64
	if err := db.DB.Model(&model.Follow{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var follows []model.Follow
	offset := (page - 1) * pageSize
	err := db.DB.
		Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(pageSize).
		Find(&follows).Error
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SubscriptionResponse, 0, len(follows))
	for i := range follows {
		author := &follows[i].Author

		var recipesCount int64
		if err := db.DB.Model(&model.Recipe{}).Where("author_id = ?", author.ID).Count(&recipesCount).Error; err != nil {
			return nil, 0, err
		}

		recipeQuery := db.DB.Where("author_id = ?", author.ID).Order("created_at DESC, id DESC")
		if recipesLimit > 0 {
			recipeQuery = recipeQuery.Limit(recipesLimit)
		}
		var recipes []model.Recipe
		if err := recipeQuery.Find(&recipes).Error; err != nil {
			return nil, 0, err
		}

		short := make([]ShortRecipeResponse, 0, len(recipes))
		for j := range recipes {
			short = append(short, BuildShortRecipeResponse(&recipes[j]))
		}

		responses = append(responses, SubscriptionResponse{
			AuthorResponse: AuthorResponse{
				ID:           author.ID,
				Username:     author.Username,
				Email:        author.Email,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				Avatar:       AvatarURL(author.Avatar),
				IsSubscribed: true, // 列表本身就是关注集合
			},
			Recipes:      short,
			RecipesCount: recipesCount,
		})
	}
	return responses, total, nil
}
