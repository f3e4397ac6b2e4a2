package router

import (
	"recipe-hub-server/internal/handler"
	"recipe-hub-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerRecipeRoutes(api *gin.RouterGroup) {
	recipes := api.Group("/recipes")

	recipes.GET("", middleware.OptionalJWTAuth(), handler.ListRecipes)
	recipes.GET("/:id", middleware.OptionalJWTAuth(), handler.GetRecipe)

	authed := recipes.Group("")
	authed.Use(middleware.JWTAuth())
	authed.Use(middleware.UserStatusCheck())

	authed.POST("", handler.CreateRecipe)
	authed.PATCH("/:id", handler.UpdateRecipe)
	authed.DELETE("/:id", handler.DeleteRecipe)

	authed.POST("/:id/favorite", handler.FavoriteRecipe)
	authed.DELETE("/:id/favorite", handler.UnfavoriteRecipe)

	authed.POST("/:id/shopping_cart", handler.AddToShoppingCart)
	authed.DELETE("/:id/shopping_cart", handler.RemoveFromShoppingCart)

	authed.GET("/download_shopping_cart", handler.DownloadShoppingCart)
}
