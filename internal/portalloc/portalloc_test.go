package portalloc

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
)

func newTestCache(t *testing.T) *cache.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.NewFromCmdable(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func TestConflicts(t *testing.T) {
	assert.True(t, Conflicts(25565, 25565))
	assert.True(t, Conflicts(25565, 25570))
	assert.True(t, Conflicts(25570, 25565))
	assert.False(t, Conflicts(25565, 25576))
}

func TestAllPortSections_ExcludesNamedPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.HSet(ctx, "servergroups.MIN", map[string]string{"portSection": "25565"}))
	require.NoError(t, c.HSet(ctx, "servergroups.SW", map[string]string{"portSection": "25700"}))

	sections, err := AllPortSections(ctx, c, "MIN")
	require.NoError(t, err)
	assert.Equal(t, []uint16{25700}, sections)
}

func TestRndPort_AvoidsExistingSections(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.HSet(ctx, "servergroups.TAKEN", map[string]string{"portSection": "25565"}))

	section, err := RndPort(ctx, c)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, section, Min)
	assert.Less(t, section, Max)
	assert.False(t, Conflicts(section, 25565))
}

func TestReconcile_RerollsOnConflict(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.HSet(ctx, "servergroups.OTHER", map[string]string{"portSection": "25565"}))

	section, err := Reconcile(ctx, c, "MIN", 25565)
	require.NoError(t, err)
	assert.False(t, Conflicts(section, 25565))
	assert.GreaterOrEqual(t, section, RerollMin)
}

func TestReconcile_NoConflictKeepsRequestedSection(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	section, err := Reconcile(ctx, c, "MIN", 25900)
	require.NoError(t, err)
	assert.Equal(t, uint16(25900), section)
}
