// Package dedicated models a single hosting node (a "dedicated server" in
// fleet terms) and the game-server instances scheduled onto it.
package dedicated

import (
	"fmt"

	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// DedicatedServer is a single hosting node: its resource budget and the
// instances of each group currently scheduled onto it.
type DedicatedServer struct {
	Name            string
	PublicAddress   string
	PrivateAddress  string
	Region          region.Region
	AvailableCPU    int16
	AvailableRAM    int16
	MaxCPU          int16
	MaxRAM          int16
	ServerInstances map[string][]*MCSInstance
}

// GetInstances returns the instances of group currently on the node.
func (d *DedicatedServer) GetInstances(group *servergroup.ServerGroup) []*MCSInstance {
	return d.ServerInstances[group.Name]
}

// GetServerCount returns how many instances of group are currently on the
// node.
func (d *DedicatedServer) GetServerCount(group *servergroup.ServerGroup) int {
	return len(d.ServerInstances[group.Name])
}

// GetServerNums returns the ServerNum of every instance of group on the
// node.
func (d *DedicatedServer) GetServerNums(group *servergroup.ServerGroup) []int {
	instances := d.ServerInstances[group.Name]
	nums := make([]int, len(instances))
	for i, inst := range instances {
		nums[i] = inst.ServerNum
	}
	return nums
}

// HasSpaceFor reports whether the node's remaining budget can fit another
// instance of group.
func (d *DedicatedServer) HasSpaceFor(group *servergroup.ServerGroup) bool {
	return d.AvailableRAM >= int16(group.RAM) && d.AvailableCPU >= int16(group.CPU)
}

// hasServerNum reports whether serverNum is already among group's running
// instances on the node.
func (d *DedicatedServer) hasServerNum(group *servergroup.ServerGroup, serverNum int) bool {
	for _, n := range d.GetServerNums(group) {
		if n == serverNum {
			return true
		}
	}
	return false
}

// AddServer schedules a new instance of group numbered serverNum onto the
// node, deriving its name (`{group.Name}-{serverNum}`) and port
// (`group.PortSection+serverNum`), and debiting the node's available RAM
// and CPU. ErrNoSpace if the node can't fit it, ErrDuplicate if serverNum
// is already running.
func (d *DedicatedServer) AddServer(group *servergroup.ServerGroup, serverNum int) (*MCSInstance, error) {
	if !d.HasSpaceFor(group) {
		return nil, fmt.Errorf("%w: %s has no space for %s", ErrNoSpace, d.Name, group.Name)
	}
	if d.hasServerNum(group, serverNum) {
		return nil, fmt.Errorf("%w: %s-%d already running on %s", ErrDuplicate, group.Name, serverNum, d.Name)
	}
	inst := NewMCSInstance(
		fmt.Sprintf("%s-%d", group.Name, serverNum),
		group.Name,
		group.PortSection+uint16(serverNum),
		group.Region,
		nil,
	)
	if d.ServerInstances == nil {
		d.ServerInstances = make(map[string][]*MCSInstance)
	}
	d.ServerInstances[group.Name] = append(d.ServerInstances[group.Name], inst)
	d.AvailableRAM -= int16(group.RAM)
	d.AvailableCPU -= int16(group.CPU)
	return inst, nil
}

// RemoveServer unschedules group's instance numbered serverNum from the
// node, crediting back the node's available RAM and CPU. ErrZeroInstances
// if the group has nothing running, ErrInstanceNotFound if serverNum isn't
// among them.
func (d *DedicatedServer) RemoveServer(group *servergroup.ServerGroup, serverNum int) error {
	instances := d.ServerInstances[group.Name]
	if len(instances) == 0 {
		return fmt.Errorf("%w: %s on %s", ErrZeroInstances, group.Name, d.Name)
	}
	for i, inst := range instances {
		if inst.ServerNum != serverNum {
			continue
		}
		d.ServerInstances[group.Name] = append(instances[:i], instances[i+1:]...)
		d.AvailableRAM += int16(group.RAM)
		d.AvailableCPU += int16(group.CPU)
		return nil
	}
	return fmt.Errorf("%w: %d on %s", ErrInstanceNotFound, serverNum, d.Name)
}
