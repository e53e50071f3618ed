// Package cache is a thin wrapper over go-redis exposing exactly the
// operations the scheduler's cache-backed packages need: typed hash, set,
// and string access. It does no TTL management or generic JSON boxing —
// unlike a general-purpose cache layer, every key here has a fixed schema
// owned by its calling package (registry, portalloc, status).
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Client wraps a redis.Cmdable so both a real *redis.Client and a miniredis-
// backed client satisfy it in tests.
type Client struct {
	rdb redis.Cmdable
}

// New builds a Client from an address and port, matching config.RedisConfig.
func New(address, port string) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", address, port),
	})
	return &Client{rdb: rdb}
}

// NewFromCmdable wraps an existing redis.Cmdable (used in tests with
// miniredis, or to share a client across components).
func NewFromCmdable(rdb redis.Cmdable) *Client {
	return &Client{rdb: rdb}
}

// Ping verifies the cache connection is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// HGetAll reads an entire hash. A missing key returns an empty, non-nil map.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: HGETALL %s: %w", key, err)
	}
	return m, nil
}

// HSet writes every field of m into the hash at key.
func (c *Client) HSet(ctx context.Context, key string, m map[string]string) error {
	if len(m) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(m)*2)
	for k, v := range m {
		values = append(values, k, v)
	}
	if err := c.rdb.HSet(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("cache: HSET %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key exists at all (hash, set, or string).
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache: EXISTS %s: %w", key, err)
	}
	return n > 0, nil
}

// Del removes a key outright.
func (c *Client) Del(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: DEL %s: %w", key, err)
	}
	return nil
}

// SAdd adds members to the set at key.
func (c *Client) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := c.rdb.SAdd(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("cache: SADD %s: %w", key, err)
	}
	return nil
}

// SRem removes members from the set at key.
func (c *Client) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := c.rdb.SRem(ctx, key, args...).Err(); err != nil {
		return fmt.Errorf("cache: SREM %s: %w", key, err)
	}
	return nil
}

// SMembers returns every member of the set at key.
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := c.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: SMEMBERS %s: %w", key, err)
	}
	return members, nil
}

// Keys enumerates keys matching a glob pattern. Linear in the number of keys
// in the cache; acceptable for this deployment's scale (see registry.List).
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: KEYS %s: %w", pattern, err)
	}
	return keys, nil
}

// Get reads a string key. ok is false if the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: GET %s: %w", key, err)
	}
	return v, true, nil
}

// Set writes a string key with no expiry.
func (c *Client) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("cache: SET %s: %w", key, err)
	}
	return nil
}
