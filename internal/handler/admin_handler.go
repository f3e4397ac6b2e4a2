package handler

import (
	"net/http"
	"recipe-hub-server/internal/middleware"
	"recipe-hub-server/internal/service"

	"github.com/gin-gonic/gin"
)

// GetServerStats 后台仪表盘统计数据
func GetServerStats(c *gin.Context) {
	stats, err := service.AdminGetServerStats()
	if err != nil {
		WriteServiceError(c, err, "获取统计数据失败")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateUserStatus 封禁/解封用户
func UpdateUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	var req struct {
		Status int `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.AdminSetUserStatus(id, req.Status); err != nil {
		WriteServiceError(c, err, "操作失败")
		return
	}

	// 让封禁立即生效，而不是等缓存过期
	middleware.ClearUserStatusCache(id)

	c.JSON(http.StatusOK, gin.H{"message": "用户状态已更新"})
}
