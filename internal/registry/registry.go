// Package registry is the spec's 4.D Group registry: CRUD on ServerGroups
// keyed by prefix in the shared cache. It is a thin facade over
// internal/servergroup, which owns the codec and the cache reads/writes —
// this package exists to give 4.D's operations (get/list/create/delete) a
// name and error-kind surface of their own, mirroring the module table in
// SPEC_FULL.md without duplicating the codec.
package registry

import (
	"context"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// ErrNotFound is returned by Get when no hash exists at prefix.
var ErrNotFound = servergroup.ErrNotFound

// Get reads a group by prefix.
func Get(ctx context.Context, c *cache.Client, prefix string) (*servergroup.ServerGroup, error) {
	return servergroup.Get(ctx, c, prefix)
}

// List enumerates every cached group.
func List(ctx context.Context, c *cache.Client) ([]*servergroup.ServerGroup, error) {
	return servergroup.List(ctx, c)
}

// Create persists group, idempotently: see servergroup.Create.
func Create(ctx context.Context, c *cache.Client, group *servergroup.ServerGroup) error {
	return servergroup.Create(ctx, c, group)
}

// Delete removes group, idempotently: see servergroup.Delete.
func Delete(ctx context.Context, c *cache.Client, group *servergroup.ServerGroup) error {
	return servergroup.Delete(ctx, c, group)
}
