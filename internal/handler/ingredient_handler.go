package handler

import (
	"net/http"
	"recipe-hub-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ListIngredients 列出食材，支持 ?name= 前缀过滤
func ListIngredients(c *gin.Context) {
	ingredients, err := service.ListIngredients(c.Query("name"))
	if err != nil {
		WriteServiceError(c, err, "获取食材列表失败")
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient 获取单个食材
func GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的食材ID"})
		return
	}

	ingredient, err := service.GetIngredient(id)
	if err != nil {
		WriteServiceError(c, err, "获取食材失败")
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// ImportIngredients 从上传的 CSV 文件导入食材字典（管理员）
func ImportIngredients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请上传 CSV 文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件读取失败"})
		return
	}
	defer file.Close()

	imported, err := service.ImportIngredientsCSV(file)
	if err != nil {
		WriteServiceError(c, err, "食材导入失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "导入完成",
		"imported": imported,
	})
}
