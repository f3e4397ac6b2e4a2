package router

import (
	"recipe-hub-server/internal/handler"

	"github.com/gin-gonic/gin"
)

// 标签与食材是公开只读的字典数据
func registerCatalogRoutes(api *gin.RouterGroup) {
	api.GET("/tags", handler.ListTags)
	api.GET("/tags/:id", handler.GetTag)

	api.GET("/ingredients", handler.ListIngredients)
	api.GET("/ingredients/:id", handler.GetIngredient)
}
