package registry

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

func newTestCache(t *testing.T) *cache.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.NewFromCmdable(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func TestGetListCreateDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := Get(ctx, c, "MIN")
	assert.ErrorIs(t, err, ErrNotFound)

	group := &servergroup.ServerGroup{
		Name: "MIN", Prefix: "MIN", RAM: 512, CPU: 1,
		PortSection: 25565, WorldZip: "arcade.zip", Plugin: "Arcade.jar",
		ConfigPath: "plugins/Arcade", MinPlayers: 8, MaxPlayers: 24,
		PVP: true, ServerType: "Minigames", Region: region.US,
	}
	require.NoError(t, Create(ctx, c, group))

	fetched, err := Get(ctx, c, "MIN")
	require.NoError(t, err)
	assert.Equal(t, "MIN", fetched.Prefix)

	groups, err := List(ctx, c)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	require.NoError(t, Delete(ctx, c, group))
	_, err = Get(ctx, c, "MIN")
	assert.ErrorIs(t, err, ErrNotFound)
}
