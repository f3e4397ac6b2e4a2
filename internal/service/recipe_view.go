package service

import (
	"recipe-hub-server/internal/db"
	"recipe-hub-server/internal/model"
)

// 列表接口的响应组装。
// 个性化标记（已收藏/已加购/已关注）对一页数据各做一次批量查询，避免逐条回表。

// AuthorResponse 作者信息，嵌在菜谱响应和订阅列表里。
type AuthorResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientInRecipe 菜谱详情中的一行食材。
type IngredientInRecipe struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse 菜谱完整视图。
type RecipeResponse struct {
	ID               uint                 `json:"id"`
	Author           AuthorResponse       `json:"author"`
	Tags             []model.Tag          `json:"tags"`
	Ingredients      []IngredientInRecipe `json:"ingredients"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
}

// ShortRecipeResponse 菜谱精简视图，用于收藏/加购回执和订阅列表。
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// viewerMarks 当前登录用户对一批菜谱/作者的个性化标记。
type viewerMarks struct {
	favorited  map[uint]struct{}
	inCart     map[uint]struct{}
	subscribed map[uint]struct{}
}

// loadViewerMarks 批量查询 viewer 对给定菜谱与作者的标记。匿名时返回空标记。
func loadViewerMarks(viewerID uint, recipeIDs []uint, authorIDs []uint) (*viewerMarks, error) {
	marks := &viewerMarks{
		favorited:  map[uint]struct{}{},
		inCart:     map[uint]struct{}{},
		subscribed: map[uint]struct{}{},
	}
	if viewerID == 0 {
		return marks, nil
	}

	if len(recipeIDs) > 0 {
		var favIDs []uint
		if err := db.DB.Model(&model.Favorite{}).
			Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
			Pluck("recipe_id", &favIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			marks.favorited[id] = struct{}{}
		}

		var cartIDs []uint
		if err := db.DB.Model(&model.ShoppingListEntry{}).
			Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
			Pluck("recipe_id", &cartIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range cartIDs {
			marks.inCart[id] = struct{}{}
		}
	}

	if len(authorIDs) > 0 {
		var subIDs []uint
		if err := db.DB.Model(&model.Follow{}).
			Where("user_id = ? AND author_id IN ?", viewerID, authorIDs).
			Pluck("author_id", &subIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range subIDs {
			marks.subscribed[id] = struct{}{}
		}
	}

	return marks, nil
}

// BuildAuthorResponse 组装单个作者视图。
func BuildAuthorResponse(user *model.User, viewerID uint) (AuthorResponse, error) {
	marks, err := loadViewerMarks(viewerID, nil, []uint{user.ID})
	if err != nil {
		return AuthorResponse{}, err
	}
	return authorResponseWithMarks(user, marks), nil
}

func authorResponseWithMarks(user *model.User, marks *viewerMarks) AuthorResponse {
	_, subscribed := marks.subscribed[user.ID]
	return AuthorResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Avatar:       AvatarURL(user.Avatar),
		IsSubscribed: subscribed,
	}
}

// BuildRecipeResponse 组装单个菜谱视图。
func BuildRecipeResponse(recipe *model.Recipe, viewerID uint) (*RecipeResponse, error) {
	list, err := BuildRecipeResponses([]model.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// BuildRecipeResponses 批量组装菜谱视图，个性化标记合并查询。
// 入参菜谱需已预加载 Author、Tags 和 Ingredients.Ingredient。
func BuildRecipeResponses(recipes []model.Recipe, viewerID uint) ([]RecipeResponse, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	marks, err := loadViewerMarks(viewerID, recipeIDs, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]

		ingredients := make([]IngredientInRecipe, 0, len(r.Ingredients))
		for _, row := range r.Ingredients {
			ingredients = append(ingredients, IngredientInRecipe{
				ID:              row.IngredientID,
				Name:            row.Ingredient.Name,
				MeasurementUnit: row.Ingredient.MeasurementUnit,
				Amount:          row.Amount,
			})
		}

		tags := r.Tags
		if tags == nil {
			tags = []model.Tag{}
		}

		_, favorited := marks.favorited[r.ID]
		_, inCart := marks.inCart[r.ID]
		responses = append(responses, RecipeResponse{
			ID:               r.ID,
			Author:           authorResponseWithMarks(&r.Author, marks),
			Tags:             tags,
			Ingredients:      ingredients,
			Name:             r.Name,
			Image:            RecipeImageURL(r.Image),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			IsFavorited:      favorited,
			IsInShoppingCart: inCart,
		})
	}
	return responses, nil
}

// BuildShortRecipeResponse 组装菜谱精简视图。
func BuildShortRecipeResponse(recipe *model.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       RecipeImageURL(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}
