package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vaultdash/internal/handler/ping"
	"vaultdash/internal/handler/vault"
	"vaultdash/internal/middleware"
)

// 手动刷新会直接请求上游接口，同一客户端 10 秒内只允许一次
const refreshThrottle = 10 * time.Second

type ApiRouter struct {
	vaultHandler *vault.Handler
	metrics      http.Handler
	metricsPath  string
	staticDir    string
}

func NewApiRouter(vh *vault.Handler, metrics http.Handler, metricsPath, staticDir string) *ApiRouter {
	return &ApiRouter{vaultHandler: vh, metrics: metrics, metricsPath: metricsPath, staticDir: staticDir}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())
	if api.metrics != nil && api.metricsPath != "" {
		g.GET(api.metricsPath, gin.WrapH(api.metrics))
	}

	base := g.Group("/api/v1")

	v := base.Group("/vault")
	{
		v.GET("/summary", api.vaultHandler.VaultSummaryGet())
		v.GET("/returns", api.vaultHandler.VaultReturnsGet())
		v.GET("/monthly", api.vaultHandler.VaultMonthlyGet())
		v.GET("/history", api.vaultHandler.VaultHistoryGet())
		v.GET("/calculator", api.vaultHandler.CalculatorGet())
		v.POST("/refresh", middleware.AntiDuplicateMiddleware(refreshThrottle), api.vaultHandler.VaultRefresh())
		v.GET("/ws", api.vaultHandler.ServeWS) // 通过websocket推送快照
	}

	t := base.Group("/trades")
	{
		t.GET("/stats", api.vaultHandler.TradeStatsGet())
		t.GET("/charts", api.vaultHandler.TradeChartsGet())
	}

	base.GET("/i18n/:lang", api.vaultHandler.I18nGet())

	// 前端静态文件
	if api.staticDir != "" {
		files := http.FileServer(http.Dir(api.staticDir))
		g.NoRoute(gin.WrapH(files))
	}
}
