package handler

import (
	"net/http"
	"recipe-hub-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTags 列出全部标签
func ListTags(c *gin.Context) {
	tags, err := service.ListTags()
	if err != nil {
		WriteServiceError(c, err, "获取标签列表失败")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag 获取单个标签
func GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的标签ID"})
		return
	}

	tag, err := service.GetTag(id)
	if err != nil {
		WriteServiceError(c, err, "获取标签失败")
		return
	}
	c.JSON(http.StatusOK, tag)
}

// CreateTag 新建标签（管理员）
func CreateTag(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color" binding:"required"`
		Slug  string `json:"slug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	tag, err := service.CreateTag(req.Name, req.Color, req.Slug)
	if err != nil {
		WriteServiceError(c, err, "创建标签失败")
		return
	}
	c.JSON(http.StatusCreated, tag)
}
