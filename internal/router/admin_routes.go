package router

import (
	"recipe-hub-server/internal/handler"
	"recipe-hub-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth())
	adminGroup.Use(middleware.UserStatusCheck())
	adminGroup.Use(middleware.AdminCheck())

	adminGroup.GET("/stats", handler.GetServerStats)

	adminGroup.POST("/tags", handler.CreateTag)
	adminGroup.POST("/ingredients/import", handler.ImportIngredients)
	adminGroup.PATCH("/users/:id/status", handler.UpdateUserStatus)
}
