package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"vaultdash/internal/consts"
	"vaultdash/pkg/response"
)

// NoCache 控制客户端不要使用缓存，看板数据每次都要拿最新的
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
		c.Header("Expires", "Thu, 01 Jan 1970 00:00:00 GMT")
		c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		c.Next()
	}
}

// Options 处理跨域预检请求
func Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToUpper(c.Request.Method) != http.MethodOptions {
			c.Next()
			return
		}
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "origin, content-type, accept, accept-language")
		c.Header("Allow", "HEAD,GET,POST,OPTIONS")
		c.AbortWithStatus(http.StatusOK)
	}
}

// Secure 添加安全控制和资源访问
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000")
		}
		c.Next()
	}
}

// RequestId 用来设置和透传requestId
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		}
		c.Header("X-Request-Id", requestId)

		// 设置requestId到context中，便于后面调用链的透传
		c.Set(consts.RequestId, requestId)
		c.Next()
	}
}

// Language 解析请求语言：query 参数 lang 优先，其次 Accept-Language，只取主语言标签
func Language(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader(consts.LanguageHeader)
		}
		lang = primaryTag(lang)
		if lang == "" {
			lang = fallback
		}
		c.Set(consts.Language, lang)
		c.Next()
	}
}

func primaryTag(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, ",;"); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexAny(v, "-_"); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(v)
}

// 限制缓存的最大大小为 500，且是并发安全的 LRU 缓存
var reqCache, _ = lru.New(500)

// AntiDuplicateMiddleware 防止单个客户端 IP 在 threshold 内重复请求同一路径，
// 只用于手动刷新这类会打到上游 API 的路由，不要挂在 websocket 上
func AntiDuplicateMiddleware(threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 使用IP + 接口路径 作为key 防抖动
		key := c.ClientIP() + c.Request.URL.Path
		if value, ok := reqCache.Get(key); ok {
			if lastRequestTime, ok := value.(time.Time); ok && time.Since(lastRequestTime) < threshold {
				response.TooManyRequests(c)
				c.Abort()
				return
			}
		}

		// Hit 或 Miss 都会更新时间戳，Add 自带 LRU 淘汰和并发安全
		reqCache.Add(key, time.Now())
		c.Next()
	}
}
