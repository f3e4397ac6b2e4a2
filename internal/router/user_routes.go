package router

import (
	"recipe-hub-server/internal/handler"
	"recipe-hub-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	users := api.Group("/users")

	// 浏览类接口匿名可访问，登录后返回 is_subscribed 标记
	users.GET("", middleware.OptionalJWTAuth(), handler.ListUsers)
	users.POST("", authLimiter, handler.Register)
	users.GET("/:id", middleware.OptionalJWTAuth(), handler.GetUser)

	authed := users.Group("")
	authed.Use(middleware.JWTAuth())
	authed.Use(middleware.UserStatusCheck())

	// "/users/me" 与 "/users/:id" 是合法的静态/参数兄弟路由
	authed.GET("/me", handler.GetSelfInfo)
	authed.POST("/set_password", handler.UpdateSelfPassword)
	authed.PUT("/me/avatar", handler.UpdateSelfAvatar)
	authed.DELETE("/me/avatar", handler.DeleteSelfAvatar)

	authed.GET("/subscriptions", handler.ListSubscriptions)
	authed.POST("/:id/subscribe", handler.Subscribe)
	authed.DELETE("/:id/subscribe", handler.Unsubscribe)
}
