package apicache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries as plain string keys and keeps one set per tag
// listing the keys that carry it.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis wraps an existing client. prefix namespaces every key
// (default "learnadmin:cache:").
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "learnadmin:cache:"
	}
	return &Redis{rdb: rdb, prefix: prefix}
}

func (c *Redis) valKey(key string) string { return c.prefix + "v:" + key }
func (c *Redis) tagKey(t Tag) string      { return c.prefix + "t:" + t.String() }

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.valKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, val []byte, tags []Tag, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	vk := c.valKey(key)
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, vk, val, ttl)
		for _, t := range tags {
			tk := c.tagKey(t)
			p.SAdd(ctx, tk, vk)
			// Tag sets may outlive their entries; DEL ignores missing keys.
			p.Expire(ctx, tk, 2*ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Redis) InvalidateTags(ctx context.Context, tags ...Tag) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	var keys []string
	tagKeys := make([]string, 0, len(tags))
	for _, t := range tags {
		tk := c.tagKey(t)
		tagKeys = append(tagKeys, tk)
		members, err := c.rdb.SMembers(ctx, tk).Result()
		if err != nil {
			return 0, fmt.Errorf("redis smembers %s: %w", tk, err)
		}
		keys = append(keys, members...)
	}

	removed := int64(0)
	if len(keys) > 0 {
		n, err := c.rdb.Del(ctx, keys...).Result()
		if err != nil {
			return 0, fmt.Errorf("redis del: %w", err)
		}
		removed = n
	}
	if err := c.rdb.Del(ctx, tagKeys...).Err(); err != nil {
		return int(removed), fmt.Errorf("redis del tags: %w", err)
	}
	return int(removed), nil
}

// Flush removes every key under the prefix.
func (c *Redis) Flush(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 200 {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis flush: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(batch) > 0 {
		if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis flush: %w", err)
		}
	}
	return nil
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
