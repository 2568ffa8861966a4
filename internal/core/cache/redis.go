package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache redis 读穿缓存；RDB 为 nil 时退化为直接回源（未配置 redis 的本地环境）
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int, prefix string) *Cache {
	c := &Cache{Prefix: prefix}
	if addr != "" {
		c.RDB = redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	}
	return c
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	full := c.key(key)
	// 先读缓存
	if b, err := c.RDB.Get(ctx, full).Bytes(); err == nil {
		return b, nil
	} else if !errors.Is(err, redis.Nil) {
		// redis 故障不影响主流程
		return load(ctx)
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(full, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, full, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 数据变更后删除相关 key
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}
