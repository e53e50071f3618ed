// Package scheduler provides the process-wide Context every cache-touching
// operation is injected with: the loaded configuration plus an open cache
// connection. Its lifetime equals the program's.
package scheduler

import (
	"context"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/config"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
)

// Context bundles the loaded Config with an open Cache connection. It is not
// safe to share across goroutines unless the caller serializes access to the
// underlying cache client — see SPEC_FULL.md's concurrency model.
type Context struct {
	Config config.Config
	Cache  *cache.Client
	Logger logging.Logger
}

// New builds a Context from a loaded config and a connected cache client.
func New(cfg config.Config, cacheClient *cache.Client, logger logging.Logger) *Context {
	return &Context{Config: cfg, Cache: cacheClient, Logger: logger}
}

// Background loads config, connects the cache client, and wires the default
// structured logger — the bootstrap path used by cmd/scheduler.
func Background(ctx context.Context) (*Context, error) {
	cfg := config.Load()
	logger := logging.NewLogger("scheduler")
	c := cache.New(cfg.RedisConn.Address, cfg.RedisConn.Port)
	if err := c.Ping(ctx); err != nil {
		return nil, err
	}
	return New(cfg, c, logger), nil
}
