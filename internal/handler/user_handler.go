package handler

import (
	"net/http"
	"recipe-hub-server/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetSelfInfo 获取当前用户信息
func GetSelfInfo(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	user, err := service.GetUserByID(uid)
	if err != nil {
		WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	resp, err := service.BuildAuthorResponse(user, uid)
	if err != nil {
		WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser 获取指定用户的公开信息，匿名可访问
func GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	user, err := service.GetUserByID(id)
	if err != nil {
		WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	resp, err := service.BuildAuthorResponse(user, viewerID(c))
	if err != nil {
		WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers 分页列出用户，匿名可访问
func ListUsers(c *gin.Context) {
	page, pageSize := normalizePagination(c)

	users, total, err := service.ListUsers(page, pageSize)
	if err != nil {
		WriteServiceError(c, err, "获取用户列表失败")
		return
	}

	uid := viewerID(c)
	list := make([]service.AuthorResponse, 0, len(users))
	for i := range users {
		resp, err := service.BuildAuthorResponse(&users[i], uid)
		if err != nil {
			WriteServiceError(c, err, "获取用户列表失败")
			return
		}
		list = append(list, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"list":      list,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateSelfPassword 修改自己的密码
func UpdateSelfPassword(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if err := service.SetPassword(uid, req.CurrentPassword, req.NewPassword); err != nil {
		WriteServiceError(c, err, "更新失败")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateSelfAvatar 上传/更换头像，请求体内联 base64 图片
func UpdateSelfAvatar(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	var req struct {
		Avatar string `json:"avatar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	avatarURL, err := service.SetAvatar(uid, req.Avatar)
	if err != nil {
		WriteServiceError(c, err, "头像上传失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": avatarURL})
}

// DeleteSelfAvatar 删除头像
func DeleteSelfAvatar(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	if err := service.DeleteAvatar(uid); err != nil {
		WriteServiceError(c, err, "头像删除失败")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubscriptions 列出我关注的作者及其最新菜谱
func ListSubscriptions(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	page, pageSize := normalizePagination(c)

	// recipes_limit 限制每个作者附带的菜谱条数
	recipesLimit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))
	if recipesLimit < 0 {
		recipesLimit = 0
	}

	list, total, err := service.ListSubscriptions(uid, page, pageSize, recipesLimit)
	if err != nil {
		WriteServiceError(c, err, "获取订阅列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"list":      list,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Subscribe 关注作者
func Subscribe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := service.FollowAuthor(uid, authorID); err != nil {
		WriteServiceError(c, err, "关注失败")
		return
	}

	author, err := service.GetUserByID(authorID)
	if err != nil {
		WriteServiceError(c, err, "关注失败")
		return
	}
	resp, err := service.BuildAuthorResponse(author, uid)
	if err != nil {
		WriteServiceError(c, err, "关注失败")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Unsubscribe 取消关注作者
func Unsubscribe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "获取用户ID失败"})
		return
	}

	authorID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	if err := service.UnfollowAuthor(uid, authorID); err != nil {
		WriteServiceError(c, err, "取消关注失败")
		return
	}

	c.Status(http.StatusNoContent)
}
