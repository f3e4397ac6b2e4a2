package router

import (
	"net/http"
	"recipe-hub-server/internal/consts"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup) {
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"name":    consts.ApplicationName,
			"version": consts.ApplicationVersion,
		})
	})
}
