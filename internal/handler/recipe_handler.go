package handler

import (
	"net/http"
	"recipe-hub-server/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRecipes 分页列出菜谱，新发布的在前，匿名可访问
// 支持 ?author= ?tags=（可重复）?is_favorited=1 ?is_in_shopping_cart=1
func ListRecipes(c *gin.Context) {
	page, pageSize := normalizePagination(c)

	var authorID uint
	if raw := c.Query("author"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的作者ID"})
			return
		}
		authorID = uint(parsed)
	}

	filter := service.RecipeListFilter{
		AuthorID:         authorID,
		TagSlugs:         c.QueryArray("tags"),
		OnlyFavorited:    c.Query("is_favorited") == "1",
		OnlyShoppingCart: c.Query("is_in_shopping_cart") == "1",
		ViewerID:         viewerID(c),
		Page:             page,
		PageSize:         pageSize,
	}

	recipes, total, err := service.ListRecipes(filter)
	if err != nil {
		WriteServiceError(c, err, "获取菜谱列表失败")
		return
	}

	list, err := service.BuildRecipeResponses(recipes, filter.ViewerID)
	if err != nil {
		WriteServiceError(c, err, "获取菜谱列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list":      list,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetRecipe 获取菜谱详情，匿名可访问
func GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	recipe, err := service.GetRecipe(id)
	if err != nil {
		WriteServiceError(c, err, "获取菜谱失败")
		return
	}

	resp, err := service.BuildRecipeResponse(recipe, viewerID(c))
	if err != nil {
		WriteServiceError(c, err, "获取菜谱失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRecipe 发布菜谱
func CreateRecipe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	recipe, err := service.CreateRecipe(uid, input)
	if err != nil {
		WriteServiceError(c, err, "发布菜谱失败")
		return
	}

	resp, err := service.BuildRecipeResponse(recipe, uid)
	if err != nil {
		WriteServiceError(c, err, "发布菜谱失败")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateRecipe 更新菜谱，仅作者本人或管理员
func UpdateRecipe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	var input service.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	recipe, err := service.UpdateRecipe(id, uid, currentAdmin(c), input)
	if err != nil {
		WriteServiceError(c, err, "更新菜谱失败")
		return
	}

	resp, err := service.BuildRecipeResponse(recipe, uid)
	if err != nil {
		WriteServiceError(c, err, "更新菜谱失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteRecipe 删除菜谱，仅作者本人或管理员
func DeleteRecipe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	if err := service.DeleteRecipe(id, uid, currentAdmin(c)); err != nil {
		WriteServiceError(c, err, "删除菜谱失败")
		return
	}

	c.Status(http.StatusNoContent)
}

// FavoriteRecipe 收藏菜谱
func FavoriteRecipe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	resp, err := service.AddFavorite(uid, id)
	if err != nil {
		WriteServiceError(c, err, "收藏失败")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UnfavoriteRecipe 取消收藏
func UnfavoriteRecipe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	if err := service.RemoveFavorite(uid, id); err != nil {
		WriteServiceError(c, err, "取消收藏失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddToShoppingCart 把菜谱加入购物清单
func AddToShoppingCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	resp, err := service.AddShoppingListEntry(uid, id)
	if err != nil {
		WriteServiceError(c, err, "加入购物清单失败")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RemoveFromShoppingCart 把菜谱移出购物清单
func RemoveFromShoppingCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的菜谱ID"})
		return
	}

	if err := service.RemoveShoppingListEntry(uid, id); err != nil {
		WriteServiceError(c, err, "移出购物清单失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart 下载聚合后的购物清单文本
func DownloadShoppingCart(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	text, err := service.RenderShoppingList(uid)
	if err != nil {
		WriteServiceError(c, err, "生成购物清单失败")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
