package api

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vaultdash/conf"
	"vaultdash/internal/dao/query"
	"vaultdash/internal/handler/vault"
	"vaultdash/internal/metrics"
	"vaultdash/internal/router"
	"vaultdash/internal/service"
	"vaultdash/pkg/cache"
	"vaultdash/pkg/hype/rest"
	"vaultdash/pkg/logger"
	"vaultdash/pkg/recorder"
)

// InitRouter 组装依赖并启动后台刷新；db、rc 为 nil 时分别关闭历史记录和使用内存缓存
func InitRouter(ctx context.Context, appCfg *conf.Config, db *gorm.DB, rc *redis.Client) (Router, error) {
	hl := appCfg.Hyperliquid
	client, err := rest.NewHyperliquidRestClient(hl.ApiURL, rest.WithRetry(hl.MaxRetries, hl.BackoffBase), rest.WithTimeout(hl.Timeout))
	if err != nil {
		return nil, err
	}

	options := []service.Option{}
	if rc != nil {
		options = append(options, service.WithStore(cache.NewRedisStore(rc)))
	}
	if db != nil {
		options = append(options, service.WithDao(query.NewVaultDao(db)))
	}
	if appCfg.Recorder.Path != "" {
		options = append(options, service.WithRecorder(recorder.NewJSONFileRecorder(appCfg.Recorder.Path)))
	}

	vs := service.NewVaultService(client, service.VaultServiceOptions{
		VaultAddress:   hl.VaultAddress,
		MatchTolerance: appCfg.Returns.MatchTolerance,
		StartDate:      appCfg.Returns.StartTime(),
		LegacyFallback: appCfg.Returns.LegacyFallback,
		CacheTTL:       appCfg.Refresh.CacheTTL,
		TradesFile:     appCfg.Trades.MetricsFile,
		HistoryKeep:    appCfg.HistoryKeep,
	}, options...)
	vs.StartUpdater(ctx, appCfg.Refresh.Interval)
	logger.Infof("vault updater started, address=%s interval=%s", hl.VaultAddress, appCfg.Refresh.Interval)

	reg := metrics.Init()
	return router.NewApiRouter(vault.NewHandler(vs), metrics.Handler(reg), appCfg.Server.MetricsPath, appCfg.Server.StaticDir), nil
}
