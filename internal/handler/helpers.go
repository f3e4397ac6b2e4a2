package handler

import (
	"recipe-hub-server/internal/consts"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID 从 gin 上下文取出登录用户 ID。
// 仅在 JWTAuth 之后的处理器中使用。
func currentUserID(c *gin.Context) (uint, bool) {
	userId, exists := c.Get("id")
	if !exists {
		return 0, false
	}
	uid, ok := userId.(uint)
	return uid, ok
}

// viewerID 取当前登录用户 ID，匿名请求返回 0。
// 用于 OptionalJWTAuth 之后的浏览类接口。
func viewerID(c *gin.Context) uint {
	uid, ok := currentUserID(c)
	if !ok {
		return 0
	}
	return uid
}

// currentAdmin 判断当前请求是否来自管理员。
func currentAdmin(c *gin.Context) bool {
	adminVal, _ := c.Get("admin")
	isAdmin, ok := adminVal.(bool)
	return ok && isAdmin
}

// normalizePagination 解析并修正分页参数。
func normalizePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(consts.DefaultPage)))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(consts.DefaultPageSize)))
	if page < 1 {
		page = consts.DefaultPage
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = consts.DefaultPageSize
	}
	return page, pageSize
}

// parseIDParam 解析路径中的数字 ID。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
