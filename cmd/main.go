package main

import (
	"context"
	"flag"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	api "vaultdash/cmd/vaultdash"
	"vaultdash/conf"
	"vaultdash/internal/middleware"
	"vaultdash/internal/model/entity"
	"vaultdash/pkg/cache"
	"vaultdash/pkg/db"
	"vaultdash/pkg/idgen"
	"vaultdash/pkg/logger"
)

/*
本地启动

go run ./cmd -config conf/config.yaml

curl http://localhost:8000/api/v1/vault/summary?lang=fr
curl -X POST http://localhost:8000/api/v1/vault/refresh
*/

func main() {
	configPath := flag.String("config", "conf/config.yaml", "config file path")
	flag.Parse()

	// 加载配置文件
	err := conf.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	if err := idgen.Init(appCfg.NodeId); err != nil {
		logger.Fatalf("snowflake init failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 初始化数据库，连不上时不记录历史
	var datasource *gorm.DB
	if appCfg.Db.Enabled {
		datasource, err = db.Init(db.NewConfig(appCfg.Db), &entity.VaultSnapshot{})
		if err != nil {
			logger.Errorf("database unavailable, snapshot history disabled: %v", err)
			datasource = nil
		}
	}

	// 初始化redis缓存，连不上时降级为内存缓存
	var rc *redis.Client
	if appCfg.Redis.Enabled {
		rc, err = cache.InitRedis(ctx, appCfg.Redis)
		if err != nil {
			logger.Errorf("redis unavailable, using in-memory cache: %v", err)
			rc = nil
		}
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		cancel()
		db.Close()
		cache.CloseRedis()
	})
	srvRouter, err := api.InitRouter(ctx, &appCfg, datasource, rc)
	if err != nil {
		logger.Fatalf("init router failed: %v", err)
	}

	srv.Run(middleware.NewMiddleware(appCfg.Language), srvRouter)
}
