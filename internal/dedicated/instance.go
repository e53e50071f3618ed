package dedicated

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/status"
)

// MCSInstance is the intermediate between a published MinecraftServer
// heartbeat and the DedicatedServer node it runs on.
type MCSInstance struct {
	Name      string
	Group     string
	ServerNum int
	Port      uint16
	Region    region.Region
	Server    *status.MinecraftServer
}

// NewMCSInstance derives ServerNum from the trailing "-N" of name.
func NewMCSInstance(name, group string, port uint16, r region.Region, server *status.MinecraftServer) *MCSInstance {
	return &MCSInstance{
		Name:      name,
		Group:     group,
		ServerNum: calculateServerNum(name),
		Port:      port,
		Region:    r,
		Server:    server,
	}
}

func calculateServerNum(name string) int {
	_, suffix, found := strings.Cut(name, "-")
	if !found {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

// GetStatus reconciles the instance's cached heartbeat: if one is already
// loaded it is refreshed in place, otherwise it is fetched for the first
// time. DoesNotExist is returned if no heartbeat has ever been published.
func (m *MCSInstance) GetStatus(ctx context.Context, c *cache.Client, now time.Time) status.Status {
	if m.Server != nil {
		return status.Update(ctx, c, m.Server, now)
	}
	server, err := status.Get(ctx, c, m.Name, m.Region)
	if err != nil {
		return status.DoesNotExist
	}
	st := status.Update(ctx, c, server, now)
	m.Server = server
	return st
}
