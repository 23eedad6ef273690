package cache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// ErrMiss key 不存在或已过期
var ErrMiss = errors.New("cache: miss")

// Store 字节缓存，vault 原始数据走这里做读穿透
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// MemoryStore 进程内缓存，未启用 redis 时使用。
// 底层是带过期的 LRU，整体 TTL 由构造参数决定；
// Set 传入更短的 ttl 时在读取时按条目再判断一次。
type MemoryStore struct {
	lru *expirable.LRU[string, memoryItem]
	now func() time.Time
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

const defaultMemorySize = 256

// NewMemoryStore size <= 0 取默认容量，ttl <= 0 表示条目只按 Set 的 ttl 过期
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, memoryItem](size, nil, ttl),
		now: time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	item, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.lru.Remove(key)
		return nil, ErrMiss
	}
	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

// Set ttl <= 0 表示只受整体 TTL 限制
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	s.lru.Add(key, item)
	return nil
}

func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
