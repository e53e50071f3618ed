// Package status implements the spec's 4.H Instance status: the
// self-reported heartbeat a running Minecraft server process publishes to
// the shared cache, and the online/offline/dead classification a scheduler
// derives from it.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// onlineWindow is how far current_time may drift from wall-clock time and
// still count as a live heartbeat.
const onlineWindow = 5 * time.Second

// deadAfterUptime is how long an instance must run with zero players before
// it is considered dead weight worth reclaiming.
const deadAfterUptime = 150 * time.Second

// MinecraftServer is a single instance's self-reported heartbeat.
type MinecraftServer struct {
	Name           string
	Group          string
	Motd           Motd
	PlayerCount    uint8
	MaxPlayerCount uint8
	Tps            uint16
	RAM            uint16
	MaxRAM         uint16
	PublicAddress  string
	Port           uint16
	DonorsOnline   uint8
	StartUpDate    time.Time // second precision
	CurrentTime    time.Time // millisecond precision
}

type wireServer struct {
	Name           string          `json:"_name"`
	Group          string          `json:"_group"`
	Motd           json.RawMessage `json:"_motd"`
	PlayerCount    uint8           `json:"_playerCount"`
	MaxPlayerCount uint8           `json:"_maxPlayerCount"`
	Tps            uint16          `json:"_tps"`
	RAM            uint16          `json:"_ram"`
	MaxRAM         uint16          `json:"_maxRam"`
	PublicAddress  string          `json:"_publicAddress"`
	Port           uint16          `json:"_port"`
	DonorsOnline   uint8           `json:"_donorsOnline"`
	StartUpDate    int64           `json:"_startUpDate"`
	CurrentTime    int64           `json:"_currentTime"`
}

// Parse decodes a heartbeat JSON blob, as published by a running instance.
func Parse(raw []byte) (*MinecraftServer, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsing, err)
	}
	for _, key := range []string{
		"_name", "_group", "_motd", "_playerCount", "_maxPlayerCount", "_tps", "_ram",
		"_maxRam", "_publicAddress", "_port", "_donorsOnline", "_startUpDate", "_currentTime",
	} {
		if _, ok := present[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrParsing, key)
		}
	}
	var w wireServer
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsing, err)
	}
	if w.Name == "" || w.Group == "" {
		return nil, fmt.Errorf("%w: missing _name or _group", ErrParsing)
	}
	motd, err := parseMotd(w.Motd)
	if err != nil {
		return nil, err
	}
	return &MinecraftServer{
		Name:           w.Name,
		Group:          w.Group,
		Motd:           motd,
		PlayerCount:    w.PlayerCount,
		MaxPlayerCount: w.MaxPlayerCount,
		Tps:            w.Tps,
		RAM:            w.RAM,
		MaxRAM:         w.MaxRAM,
		PublicAddress:  w.PublicAddress,
		Port:           w.Port,
		DonorsOnline:   w.DonorsOnline,
		StartUpDate:    time.Unix(w.StartUpDate, 0),
		CurrentTime:    time.UnixMilli(w.CurrentTime),
	}, nil
}

func statusKey(r region.Region, name string) string {
	return fmt.Sprintf("serverstatus.minecraft.%s.%s", r, name)
}

// Get reads and decodes an instance's heartbeat. Returns ErrNotFound if no
// heartbeat has ever been published for name in r.
func Get(ctx context.Context, c *cache.Client, name string, r region.Region) (*MinecraftServer, error) {
	raw, ok, err := c.Get(ctx, statusKey(r, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return Parse([]byte(raw))
}

// GetAll enumerates every published heartbeat across every region.
func GetAll(ctx context.Context, c *cache.Client) ([]*MinecraftServer, error) {
	keys, err := c.Keys(ctx, "serverstatus.minecraft.*.*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	servers := make([]*MinecraftServer, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := c.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if !ok {
			continue
		}
		s, err := Parse([]byte(raw))
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return servers, nil
}

// FromServerGroup enumerates every published heartbeat belonging to group,
// by its region-qualified prefix glob.
func FromServerGroup(ctx context.Context, c *cache.Client, group *servergroup.ServerGroup) ([]*MinecraftServer, error) {
	pattern := fmt.Sprintf("serverstatus.minecraft.%s.%s-*", group.Region, group.Prefix)
	keys, err := c.Keys(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	servers := make([]*MinecraftServer, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := c.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if !ok {
			continue
		}
		s, err := Parse([]byte(raw))
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return servers, nil
}

// Status is the outcome of reconciling an in-memory MinecraftServer against
// the cache.
type Status string

const (
	Online           Status = "ONLINE"
	Offline          Status = "OFFLINE"
	DoesNotExist     Status = "DOES_NOT_EXIST"
	GroupNotFound    Status = "GROUP_NOT_FOUND"
	InstanceNotFound Status = "INSTANCE_NOT_FOUND"
)

// isOnline reports whether s's own CurrentTime is within onlineWindow of
// now — i.e. whether s, as last known, still looks alive.
func (s *MinecraftServer) isOnline(now time.Time) bool {
	diff := now.Sub(s.CurrentTime)
	if diff < 0 {
		diff = -diff
	}
	return diff <= onlineWindow
}

// Update reconciles s against the group it claims to belong to and the
// latest heartbeat published under its own name: GROUP_NOT_FOUND if the
// group no longer exists, INSTANCE_NOT_FOUND if no heartbeat is published,
// OFFLINE if the heartbeat hasn't advanced and s itself looks stale,
// otherwise s is overwritten with the fresh heartbeat and ONLINE is
// returned.
func Update(ctx context.Context, c *cache.Client, s *MinecraftServer, now time.Time) Status {
	group, err := servergroup.Get(ctx, c, s.Group)
	if err != nil {
		return GroupNotFound
	}
	fresh, err := Get(ctx, c, s.Name, group.Region)
	if err != nil {
		return InstanceNotFound
	}
	if s.CurrentTime.Equal(fresh.CurrentTime) && !s.isOnline(now) {
		return Offline
	}
	*s = *fresh
	return Online
}

// IsEmpty reports whether s currently has no players connected.
func (s *MinecraftServer) IsEmpty() bool {
	return s.PlayerCount == 0
}

// uptime returns how long s has been running, relative to now.
func (s *MinecraftServer) uptime(now time.Time) time.Duration {
	return now.Sub(s.StartUpDate)
}

// IsDeadServer reports whether s has been running empty long enough to be
// considered dead weight: zero players and at least deadAfterUptime of
// uptime since StartUpDate.
func (s *MinecraftServer) IsDeadServer(now time.Time) bool {
	return s.IsEmpty() && s.uptime(now) >= deadAfterUptime
}

// GetEmptyServers returns every published heartbeat that IsDeadServer, at
// the given reference time.
func GetEmptyServers(ctx context.Context, c *cache.Client, now time.Time) ([]*MinecraftServer, error) {
	all, err := GetAll(ctx, c)
	if err != nil {
		return nil, err
	}
	dead := make([]*MinecraftServer, 0)
	for _, s := range all {
		if s.IsDeadServer(now) {
			dead = append(dead, s)
		}
	}
	return dead, nil
}
