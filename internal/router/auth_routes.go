package router

import (
	"recipe-hub-server/internal/handler"
	"recipe-hub-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	api.POST("/auth/token/login", authLimiter, handler.Login)
	api.POST("/auth/token/logout", middleware.JWTAuth(), handler.Logout)
}
