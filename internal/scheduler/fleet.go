package scheduler

import (
	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
)

// Fleet builds the runtime DedicatedServers collection from the configured
// node list, seeding each node's available RAM/CPU from its configured
// max — matching `dedicated_server_with_defaults` in the original config
// model.
func (c *Context) Fleet() *dedicated.DedicatedServers {
	servers := make([]*dedicated.DedicatedServer, 0, len(c.Config.DedicatedServers.Servers))
	for _, node := range c.Config.DedicatedServers.Servers {
		servers = append(servers, &dedicated.DedicatedServer{
			Name:            node.Name,
			PublicAddress:   node.PublicAddress,
			PrivateAddress:  node.PrivateAddress,
			Region:          node.Region,
			AvailableCPU:    node.CPU,
			AvailableRAM:    node.RAM,
			MaxCPU:          node.CPU,
			MaxRAM:          node.RAM,
			ServerInstances: make(map[string][]*dedicated.MCSInstance),
		})
	}
	return &dedicated.DedicatedServers{Servers: servers}
}
