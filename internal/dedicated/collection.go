package dedicated

import (
	"sort"

	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// DedicatedServers is the fleet's full set of hosting nodes.
type DedicatedServers struct {
	Servers []*DedicatedServer
}

// sortAscending orders servers by ascending (AvailableRAM, AvailableCPU):
// least-resourced first, so the scan below naturally favors the
// most-resourced node among ties.
func (d *DedicatedServers) sortAscending() {
	sort.SliceStable(d.Servers, func(i, j int) bool {
		a, b := d.Servers[i], d.Servers[j]
		if a.AvailableRAM != b.AvailableRAM {
			return a.AvailableRAM < b.AvailableRAM
		}
		return a.AvailableCPU < b.AvailableCPU
	})
}

// GetBestDedicatedServer picks the node to place group's next instance on:
// among nodes in group's region with room for it, the one with the fewest
// existing instances of group, favoring the most-resourced node on ties.
// Returns nil if no node qualifies.
func (d *DedicatedServers) GetBestDedicatedServer(group *servergroup.ServerGroup) *DedicatedServer {
	d.sortAscending()

	var best *DedicatedServer
	for _, ds := range d.Servers {
		if ds.Region != group.Region || !ds.HasSpaceFor(group) {
			continue
		}
		if best != nil && best.GetServerCount(group) < ds.GetServerCount(group) {
			continue
		}
		best = ds
	}
	return best
}

func highestServerNum(instances []*MCSInstance) int {
	highest := 0
	for _, inst := range instances {
		if inst.ServerNum > highest {
			highest = inst.ServerNum
		}
	}
	return highest
}

// GetNextServerNum returns the next free ServerNum for group, across every
// node in the fleet.
func (d *DedicatedServers) GetNextServerNum(group *servergroup.ServerGroup) int {
	highest := 0
	for _, ds := range d.Servers {
		if n := highestServerNum(ds.ServerInstances[group.Name]); n > highest {
			highest = n
		}
	}
	return highest + 1
}
