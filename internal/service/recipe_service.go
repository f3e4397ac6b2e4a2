package service

import (
	"errors"
	"recipe-hub-server/internal/common"
	"recipe-hub-server/internal/config"
	"recipe-hub-server/internal/consts"
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
	"recipe-hub-server/internal/utils"
	"strings"

	"gorm.io/gorm"
)

// RecipeIngredientInput 提交菜谱时的一行食材用量。
type RecipeIngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// RecipeInput 创建/更新菜谱的提交内容。
// Image 为 base64 data URI；更新时留空表示保留原图。
type RecipeInput struct {
	Name        string                  `json:"name" binding:"required"`
	Text        string                  `json:"text" binding:"required"`
	Image       string                  `json:"image"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	TagIDs      []uint                  `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required"`
}

// RecipeListFilter 菜谱列表的筛选条件。
type RecipeListFilter struct {
	AuthorID         uint     // 0 表示不过滤
	TagSlugs         []string // 多标签之间是"或"关系
	OnlyFavorited    bool     // 仅看 ViewerID 收藏过的
	OnlyShoppingCart bool     // 仅看 ViewerID 加入购物清单的
	ViewerID         uint     // 当前登录用户，匿名为 0
	Page             int
	PageSize         int
}

// validateRecipeInput 做菜谱提交的纯校验，不碰数据库。
func validateRecipeInput(input *RecipeInput, requireImage bool) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || len(input.Name) > consts.MaxNameLength {
		return common.NewValidationError("菜谱名不能为空且不超过 256 个字符")
	}
	if strings.TrimSpace(input.Text) == "" {
		return common.NewValidationError("菜谱做法不能为空")
	}
	if requireImage && input.Image == "" {
		return common.NewValidationError("必须上传菜谱图片")
	}
	if ok, msg := utils.ValidateCookingTime(input.CookingTime); !ok {
		return common.NewValidationError(msg)
	}
	if len(input.TagIDs) == 0 {
		return common.NewValidationError("至少选择一个标签")
	}
	if len(input.Ingredients) == 0 {
		return common.NewValidationError("至少添加一种食材")
	}

	tagSeen := make(map[uint]struct{}, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if _, ok := tagSeen[id]; ok {
			return common.NewValidationError("标签不能重复提交")
		}
		tagSeen[id] = struct{}{}
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		if ok, msg := utils.ValidateIngredientAmount(ing.Amount); !ok {
			return common.NewValidationError(msg)
		}
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	if ok, msg := utils.ValidateUniqueIngredients(ingredientIDs); !ok {
		return common.NewValidationError(msg)
	}
	return nil
}

func recipeImageRoot() string {
	root := config.Get().Upload.Path
	if root == "" {
		root = "uploads/recipes"
	}
	return root
}

// CreateRecipe 创建菜谱。图片先落盘，数据库事务失败时回收文件。
func CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error) {
	if err := validateRecipeInput(&input, true); err != nil {
		return nil, err
	}

	imageRoot := recipeImageRoot()
	filename, err := SaveBase64Image(input.Image, imageRoot)
	if err != nil {
		return nil, err
	}

	var recipe model.Recipe
	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		tags, err := tagsByIDs(tx, input.TagIDs)
		if err != nil {
			return err
		}
		ingredientIDs := make([]uint, 0, len(input.Ingredients))
		for _, ing := range input.Ingredients {
			ingredientIDs = append(ingredientIDs, ing.ID)
		}
		if _, err := ingredientsByIDs(tx, ingredientIDs); err != nil {
			return err
		}

		recipe = model.Recipe{
			AuthorID:    authorID,
			Name:        input.Name,
			Image:       filename,
			Text:        input.Text,
			CookingTime: input.CookingTime,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.NewConflictError("你已发布过同名菜谱")
			}
			return err
		}

		rows := make([]model.RecipeIngredient, 0, len(input.Ingredients))
		for _, ing := range input.Ingredients {
			rows = append(rows, model.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.ID,
				Amount:       ing.Amount,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		return tx.Model(&recipe).Association("Tags").Replace(tags)
	})
	if txErr != nil {
		_ = DeleteStoredImage(imageRoot, filename)
		return nil, txErr
	}

	return GetRecipe(recipe.ID)
}

// UpdateRecipe 整体替换式更新：基础字段覆盖，食材行与标签关联整组删除重建。
// 仅作者本人或管理员可操作。
func UpdateRecipe(recipeID uint, actorID uint, actorAdmin bool, input RecipeInput) (*model.Recipe, error) {
	if err := validateRecipeInput(&input, false); err != nil {
		return nil, err
	}

	existing, err := GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID && !actorAdmin {
		return nil, common.NewForbiddenError("只能修改自己的菜谱")
	}

	imageRoot := recipeImageRoot()
	newImage := ""
	if input.Image != "" {
		newImage, err = SaveBase64Image(input.Image, imageRoot)
		if err != nil {
			return nil, err
		}
	}

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		tags, err := tagsByIDs(tx, input.TagIDs)
		if err != nil {
			return err
		}
		ingredientIDs := make([]uint, 0, len(input.Ingredients))
		for _, ing := range input.Ingredients {
			ingredientIDs = append(ingredientIDs, ing.ID)
		}
		if _, err := ingredientsByIDs(tx, ingredientIDs); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         input.Name,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}
		if newImage != "" {
			updates["image"] = newImage
		}
		if err := tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.NewConflictError("你已发布过同名菜谱")
			}
			return err
		}

		// 食材行整组删除重建，不做单行 diff
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		rows := make([]model.RecipeIngredient, 0, len(input.Ingredients))
		for _, ing := range input.Ingredients {
			rows = append(rows, model.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: ing.ID,
				Amount:       ing.Amount,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		return tx.Model(&model.Recipe{ID: recipeID}).Association("Tags").Replace(tags)
	})
	if txErr != nil {
		if newImage != "" {
			_ = DeleteStoredImage(imageRoot, newImage)
		}
		return nil, txErr
	}

	// 换图成功后再清理旧图
	if newImage != "" && existing.Image != "" && existing.Image != newImage {
		_ = DeleteStoredImage(imageRoot, existing.Image)
	}

	return GetRecipe(recipeID)
}

// DeleteRecipe 删除菜谱，关联行由外键级联清理，图片文件随后回收。
func DeleteRecipe(recipeID uint, actorID uint, actorAdmin bool) error {
	recipe, err := GetRecipe(recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != actorID && !actorAdmin {
		return common.NewForbiddenError("只能删除自己的菜谱")
	}

	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		// sqlite 下外键级联依赖 PRAGMA，这里显式清理关联行保证各数据库行为一致
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.ShoppingListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Recipe{ID: recipeID}).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, recipeID).Error
	})
	if txErr != nil {
		return txErr
	}

	_ = DeleteStoredImage(recipeImageRoot(), recipe.Image)
	return nil
}

// GetRecipe 按 ID 获取菜谱，预加载作者、标签和食材行。
func GetRecipe(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := db.DB.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("菜谱不存在")
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes 按筛选条件分页列出菜谱，新发布的在前。
func ListRecipes(filter RecipeListFilter) ([]model.Recipe, int64, error) {
	query := db.DB.Model(&model.Recipe{})

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.Where("recipes.id IN (?)",
			db.DB.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs),
		)
	}
	if filter.OnlyFavorited {
		if filter.ViewerID == 0 {
			return []model.Recipe{}, 0, nil
		}
		query = query.Where("recipes.id IN (?)",
			db.DB.Model(&model.Favorite{}).Select("recipe_id").Where("user_id = ?", filter.ViewerID),
		)
	}
	if filter.OnlyShoppingCart {
		if filter.ViewerID == 0 {
			return []model.Recipe{}, 0, nil
		}
		query = query.Where("recipes.id IN (?)",
			db.DB.Model(&model.ShoppingListEntry{}).Select("recipe_id").Where("user_id = ?", filter.ViewerID),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset(offset).Limit(filter.PageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}
