package dedicated

import "errors"

// ErrNoSpace is returned by AddServer when a node lacks the RAM or CPU a
// group's instance would require.
var ErrNoSpace = errors.New("dedicated: no space for server")

// ErrDuplicate is returned by AddServer when the instance's name is already
// running on the node.
var ErrDuplicate = errors.New("dedicated: instance already running")

// ErrZeroInstances is returned by RemoveServer when the group has no
// running instances on the node to remove.
var ErrZeroInstances = errors.New("dedicated: group has zero instances")

// ErrInstanceNotFound is returned by RemoveServer when no instance with the
// given server number is running on the node.
var ErrInstanceNotFound = errors.New("dedicated: instance not found")

// ErrStorage wraps any status.Get failure other than status.ErrNotFound met
// while LaunchServer polls: a cache transport failure or an unparseable
// heartbeat.
var ErrStorage = errors.New("dedicated: storage error")

// ErrRegionMismatch is returned by LaunchServer when asked to launch a
// group's instance on a node in a different region.
var ErrRegionMismatch = errors.New("dedicated: node region does not match group region")

// ErrMinecraftServerNotRunning is returned by LaunchServer when an instance
// fails to publish a heartbeat within its startup timeout.
var ErrMinecraftServerNotRunning = errors.New("dedicated: minecraft server did not start in time")
