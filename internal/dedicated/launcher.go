package dedicated

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
	"github.com/mineplex-ops/fleet-scheduler/internal/status"
)

// pollInterval and startupTimeout bound how long LaunchServer waits for a
// freshly started instance to publish its first heartbeat.
const (
	pollInterval   = 5 * time.Second
	startupTimeout = 40 * time.Second
)

// Launcher starts a game-server process for inst on node, however the
// deployment actually spawns processes (a shell command, a Kubernetes pod,
// ...). Start must return once the process has been handed off, not once
// it's ready to accept players.
type Launcher interface {
	Start(ctx context.Context, node *DedicatedServer, group *servergroup.ServerGroup, inst *MCSInstance) error
}

// LaunchServer derives the instance name/port for group's serverNum,
// invokes launcher, then polls the cache every pollInterval until a
// heartbeat appears for that name or startupTimeout elapses.
// ErrRegionMismatch if node and group disagree on region.
// ErrMinecraftServerNotRunning on timeout; the caller should treat the
// placement as failed and release the reserved slot.
func LaunchServer(ctx context.Context, c *cache.Client, launcher Launcher, node *DedicatedServer, group *servergroup.ServerGroup, serverNum int) (*MCSInstance, error) {
	if node.Region != group.Region {
		return nil, fmt.Errorf("%w: node %s is %s, group %s is %s", ErrRegionMismatch, node.Name, node.Region, group.Name, group.Region)
	}

	inst := NewMCSInstance(
		fmt.Sprintf("%s-%d", group.Name, serverNum),
		group.Name,
		group.PortSection+uint16(serverNum),
		group.Region,
		nil,
	)
	if err := launcher.Start(ctx, node, group, inst); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(startupTimeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		server, err := status.Get(ctx, c, inst.Name, inst.Region)
		if err == nil {
			inst.Server = server
			return inst, nil
		}
		if !errors.Is(err, status.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s on %s", ErrMinecraftServerNotRunning, inst.Name, node.Name)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
