package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "inventory-admin/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小（默认 16MB，覆盖多文件表单）
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, "request body too large"))
		}
	}
}
