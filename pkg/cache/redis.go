package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vaultdash/conf"
)

var redisClient *redis.Client

// InitRedis 初始化redisClient，连不上直接返回错误，由调用方决定是否降级到内存缓存
func InitRedis(ctx context.Context, redisCfg conf.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		DB:              redisCfg.Db,
		Addr:            redisCfg.Addr,
		Password:        redisCfg.Password,
		PoolSize:        redisCfg.PoolSize,
		MinIdleConns:    redisCfg.MinIdleConns,
		ConnMaxIdleTime: time.Duration(redisCfg.IdleTimeout) * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", redisCfg.Addr, err)
	}
	redisClient = client
	return client, nil
}

func GetRedisClient() *redis.Client {
	if nil == redisClient {
		panic("Please initialize the Redis client first!")
	}
	return redisClient
}

// 关闭redis client
func CloseRedis() {
	if nil != redisClient {
		_ = redisClient.Close()
		redisClient = nil
	}
}
