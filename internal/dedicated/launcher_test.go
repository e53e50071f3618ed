package dedicated

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return cache.NewFromCmdable(rdb)
}

type fakeLauncher struct {
	publish   *cache.Client
	heartbeat string
}

func (f *fakeLauncher) Start(ctx context.Context, node *DedicatedServer, group *servergroup.ServerGroup, inst *MCSInstance) error {
	if f.publish == nil {
		return nil
	}
	return f.publish.Set(ctx, "serverstatus.minecraft."+string(inst.Region)+"."+inst.Name, f.heartbeat)
}

func TestLaunchServer_RegionMismatch(t *testing.T) {
	c := newTestCache(t)
	n := node("n1", 1024, 4, region.EU)
	g := group("MIN", 512, 1, region.US)

	_, err := LaunchServer(context.Background(), c, &fakeLauncher{}, n, g, 1)
	assert.ErrorIs(t, err, ErrRegionMismatch)
}

func TestLaunchServer_SucceedsOnHeartbeat(t *testing.T) {
	c := newTestCache(t)
	n := node("n1", 1024, 4, region.US)
	g := group("MIN", 512, 1, region.US)

	heartbeat := `{"_name":"MIN-1","_group":"MIN","_motd":"hi","_playerCount":0,"_maxPlayerCount":24,"_tps":20,"_ram":0,"_maxRam":0,"_publicAddress":"","_port":25566,"_donorsOnline":0,"_startUpDate":0,"_currentTime":0}`
	launcher := &fakeLauncher{publish: c, heartbeat: heartbeat}

	inst, err := LaunchServer(context.Background(), c, launcher, n, g, 1)
	require.NoError(t, err)
	assert.Equal(t, "MIN-1", inst.Name)
	require.NotNil(t, inst.Server)
}

func TestLaunchServer_CancelledContext(t *testing.T) {
	c := newTestCache(t)
	n := node("n1", 1024, 4, region.US)
	g := group("MIN", 512, 1, region.US)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := LaunchServer(ctx, c, &fakeLauncher{}, n, g, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
