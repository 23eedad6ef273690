package ping

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping 启动探活用，服务启动后 Server 会轮询这个接口
func Ping() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "\r\nSuccess")
	}
}
