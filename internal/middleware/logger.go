package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"vaultdash/internal/consts"
	"vaultdash/pkg/logger"
)

func Logger(c *gin.Context) {
	// 请求前
	t := time.Now()
	reqPath := c.Request.URL.Path
	reqId := c.GetString(consts.RequestId)
	ip := c.ClientIP()

	logger.Debug("[Request Start]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("query", c.Request.URL.RawQuery),
		logger.Pair("method", c.Request.Method))

	c.Next()
	// 请求后
	logger.Info("[Request End]",
		logger.Pair(consts.RequestId, reqId),
		logger.Pair("host", ip),
		logger.Pair("path", reqPath),
		logger.Pair("status", c.Writer.Status()),
		logger.Pair("cost", time.Since(t)))
}
