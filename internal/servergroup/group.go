package servergroup

import (
	"context"
	"fmt"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
	"github.com/mineplex-ops/fleet-scheduler/internal/portalloc"
)

const groupsSetKey = "servergroups"

func groupHashKey(prefix string) string {
	return "servergroups." + prefix
}

// Game is a GameType paired with its resolved GameOptions, the template a
// fresh ServerGroup is built from.
type Game struct {
	Name    catalog.GameType
	Options GameOptions
}

// NewGame resolves a Game's options via Build.
func NewGame(ctx context.Context, c *cache.Client, name catalog.GameType) (*Game, error) {
	opts, err := Build(ctx, c, name)
	if err != nil {
		return nil, err
	}
	return &Game{Name: name, Options: *opts}, nil
}

// FromGame produces a fresh ServerGroup from a Game template, per
// spec.md §4.C: ram=512, cpu=1, zero counters, hardMaxPlayerCap=false,
// modes=None, teamServerKey set to the prefix of the team-server partner.
func FromGame(game *Game) *ServerGroup {
	opts := game.Options
	var teamServerKey *string
	if opts.TeamServer != nil {
		if prefix, ok := catalog.GameToPrefix[*opts.TeamServer]; ok {
			teamServerKey = &prefix
		}
	}
	var boosterGroup *string
	if opts.BoosterGroup != nil {
		s := opts.BoosterGroup.String()
		boosterGroup = &s
	}
	return &ServerGroup{
		Name:                       opts.Prefix,
		Prefix:                     opts.Prefix,
		RAM:                        512,
		CPU:                        1,
		TotalServers:               0,
		JoinableServers:            0,
		PortSection:                opts.PortSection,
		Uptimes:                    nil,
		ArcadeGroup:                opts.ArcadeGroup,
		WorldZip:                   opts.WorldZip,
		Plugin:                     opts.Plugin,
		ConfigPath:                 opts.ConfigPath,
		Host:                       opts.Host,
		MinPlayers:                 opts.MinPlayers,
		MaxPlayers:                 opts.MaxPlayers,
		PVP:                        opts.PVP,
		Tournament:                 opts.Tournament,
		TournamentPoints:           opts.TournamentPoints,
		HardMaxPlayerCap:           false,
		Games:                      opts.Games,
		Modes:                      nil,
		BoosterGroup:               boosterGroup,
		ServerType:                 opts.ServerType,
		AddNoCheat:                 opts.AddNoCheat,
		AddWorldEdit:               opts.AddWorldEdit,
		TeamRejoin:                 opts.TeamRejoin,
		TeamAutoJoin:               opts.TeamAutoJoin,
		TeamForceBalance:           opts.TeamForceBalance,
		GameAutoStart:              opts.GameAutoStart,
		GameTimeout:                opts.GameTimeout,
		GameVoting:                 opts.GameVoting,
		MapVoting:                  opts.MapVoting,
		RewardGems:                 opts.RewardGems,
		RewardItems:                opts.RewardItems,
		RewardStats:                opts.RewardStats,
		RewardAchievements:         opts.RewardAchievements,
		HotbarInventory:            opts.HotbarInventory,
		HotbarHubClock:             opts.HotbarHubClock,
		PlayerKickIdle:             opts.PlayerKickIdle,
		StaffOnly:                  opts.StaffOnly,
		Whitelist:                  opts.Whitelist,
		ResourcePack:               opts.ResourcePack,
		Region:                     opts.Region,
		TeamServerKey:              teamServerKey,
		PortalBottomCornerLocation: opts.PortalBottomCornerLocation,
		PortalTopCornerLocation:    opts.PortalTopCornerLocation,
		NpcName:                    opts.NpcName,
	}
}

// Get reads and decodes the group at prefix. Returns ErrNotFound if the
// hash is absent or empty.
func Get(ctx context.Context, c *cache.Client, prefix string) (*ServerGroup, error) {
	hash, err := c.HGetAll(ctx, groupHashKey(prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return FromMap(hash)
}

// List enumerates every cached group under servergroups.*.
func List(ctx context.Context, c *cache.Client) ([]*ServerGroup, error) {
	keys, err := c.Keys(ctx, "servergroups.*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	groups := make([]*ServerGroup, 0, len(keys))
	for _, key := range keys {
		hash, err := c.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		group, err := FromMap(hash)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// IsCached reports whether prefix already has a hash in the cache.
func IsCached(ctx context.Context, c *cache.Client, prefix string) (bool, error) {
	return c.Exists(ctx, groupHashKey(prefix))
}

// LoadExistingCache overwrites group in place with its cached value, if one
// exists; otherwise group is left unchanged.
func LoadExistingCache(ctx context.Context, c *cache.Client, group *ServerGroup) error {
	cached, err := Get(ctx, c, group.Prefix)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	*group = *cached
	return nil
}

// Create persists group. If a hash already exists at its prefix, Create is
// idempotent: it only ensures the set-membership entry and returns. Otherwise
// it reconciles port collisions via portalloc before writing the hash and
// adding the prefix to the servergroups set.
func Create(ctx context.Context, c *cache.Client, group *ServerGroup) error {
	exists, err := IsCached(ctx, c, group.Prefix)
	if err != nil {
		return err
	}
	if exists {
		return c.SAdd(ctx, groupsSetKey, group.Prefix)
	}
	section, err := portalloc.Reconcile(ctx, c, group.Prefix, group.PortSection)
	if err != nil {
		return err
	}
	group.PortSection = section
	if err := c.HSet(ctx, groupHashKey(group.Prefix), group.ToMap()); err != nil {
		return err
	}
	return c.SAdd(ctx, groupsSetKey, group.Prefix)
}

// Delete removes group's hash (if present) and always removes its prefix
// from the servergroups set — both operations are idempotent.
func Delete(ctx context.Context, c *cache.Client, group *ServerGroup) error {
	exists, err := IsCached(ctx, c, group.Prefix)
	if err != nil {
		return err
	}
	if exists {
		if err := c.Del(ctx, groupHashKey(group.Prefix)); err != nil {
			return err
		}
	}
	return c.SRem(ctx, groupsSetKey, group.Prefix)
}
