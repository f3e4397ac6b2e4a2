package middleware

import (
	"net/http"
	"recipe-hub-server/internal/config"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 限制请求体大小
// 菜谱图片以 base64 内联在 JSON 里提交，上限要容得下编码膨胀后的图片
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Limits.MaxRequestBodyMB
		if maxSizeMB <= 0 {
			// 如果未设置或为0，默认 8MB
			maxSizeMB = 8
		}

		// 限制大小 (MB -> Bytes)
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		// 使用 MaxBytesReader 限制读取的字节数
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}
