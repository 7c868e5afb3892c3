package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Generation keys outlive any single read-through load by a wide margin.
const generationTTL = 24 * time.Hour

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
var setIfGeneration = goredis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
  redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

type redisCache struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedis namespaces every key with prefix so several deployments can share a server.
func NewRedis(rdb *goredis.Client, prefix string) ViewCache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "lingo"
	}
	return &redisCache{rdb: rdb, prefix: prefix + ":"}
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *redisCache) Generation(ctx context.Context, key string) (uint64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey(key)).Uint64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisCache) SetIfGeneration(ctx context.Context, key string, gen uint64, val any, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(val)
	if err != nil {
		return false, err
	}
	keys := []string{c.prefix + key, c.genKey(key)}
	n, err := setIfGeneration.Run(ctx, c.rdb, keys, strconv.FormatUint(gen, 10), raw, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, full...)
		for _, k := range keys {
			pipe.Incr(ctx, c.genKey(k))
			pipe.Expire(ctx, c.genKey(k), generationTTL)
		}
		return nil
	})
	return err
}

func (c *redisCache) genKey(key string) string {
	return c.prefix + key + ":gen"
}
