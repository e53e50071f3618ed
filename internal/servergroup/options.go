package servergroup

import (
	"context"
	"strings"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
	"github.com/mineplex-ops/fleet-scheduler/internal/portalloc"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
)

// GameOptions is the fully resolved template for a fleet, produced by Build.
// It is a strict subset of ServerGroup's fields (see ServerGroup's doc
// comment for the superset relationship).
type GameOptions struct {
	Prefix                     string
	StaffOnly                  bool
	Whitelist                  bool
	Host                       *string
	MinPlayers                 uint8
	MaxPlayers                 uint8
	PortSection                uint16
	ArcadeGroup                bool
	WorldZip                   string
	Plugin                     string
	ConfigPath                 string
	PVP                        bool
	Tournament                 bool
	TournamentPoints           bool
	Games                      *string
	ServerType                 string
	AddNoCheat                 bool
	AddWorldEdit               bool
	TeamRejoin                 bool
	TeamAutoJoin               bool
	TeamForceBalance           bool
	GameAutoStart              bool
	GameTimeout                bool
	GameVoting                 bool
	MapVoting                  bool
	RewardGems                 bool
	RewardItems                bool
	RewardStats                bool
	RewardAchievements         bool
	HotbarInventory            bool
	HotbarHubClock             bool
	PlayerKickIdle             bool
	TeamServer                 *catalog.GameType
	BoosterGroup               *catalog.BoosterGroup
	NpcName                    *string
	ResourcePack               *string
	Region                     region.Region
	PortalBottomCornerLocation *string
	PortalTopCornerLocation    *string
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstSevenGamesCSV() string {
	names := make([]string, 0, 7)
	for i, g := range catalog.AllGameTypes {
		if i == 7 {
			break
		}
		names = append(names, g.String())
	}
	return strings.Join(names, ",")
}

// Build resolves a GameOptions for game, consulting the group registry for
// an existing cached ServerGroup (step 1 of spec.md §4.B) and falling back
// to catalog defaults and hard-coded literals for every field the cache
// doesn't supply (step 2). Port section (step 3) and the Mixed Arcade games
// list (step 4) get their own defaulting rules.
func Build(ctx context.Context, c *cache.Client, game catalog.GameType) (*GameOptions, error) {
	prefix := catalog.GameToPrefix[game]

	var cached *ServerGroup
	if prefix != "" {
		group, err := Get(ctx, c, prefix)
		if err == nil {
			cached = group
		} else if err != ErrNotFound {
			return nil, err
		}
	}

	playerCount := catalog.DefaultPlayerCount
	if pc, ok := catalog.GameToPlayerCount[game]; ok {
		playerCount = pc
	}
	minPlayers, maxPlayers := playerCount.Min, playerCount.Max
	if cached != nil {
		minPlayers, maxPlayers = cached.MinPlayers, cached.MaxPlayers
	}

	portSection := uint16(0)
	if cached != nil {
		portSection = cached.PortSection
	} else {
		section, err := portalloc.RndPort(ctx, c)
		if err != nil {
			return nil, err
		}
		portSection = section
	}

	games := defaultGames(game)
	if cached != nil {
		if cached.Games != nil && *cached.Games != "" && *cached.Games != "null" {
			games = cached.Games
		}
	}

	teamServer := optionalTeamServer(game, cached)
	boosterGroup := optionalBoosterGroup(game, cached)
	npcName := optionalNpcName(game, cached)

	opts := &GameOptions{
		Prefix:             prefix,
		StaffOnly:          boolOr(cached, false, func(g *ServerGroup) bool { return g.StaffOnly }),
		Whitelist:          boolOr(cached, false, func(g *ServerGroup) bool { return g.Whitelist }),
		Host:               optionalStringOr(cached, nil, func(g *ServerGroup) *string { return g.Host }),
		MinPlayers:         minPlayers,
		MaxPlayers:         maxPlayers,
		PortSection:        portSection,
		ArcadeGroup:        boolOr(cached, true, func(g *ServerGroup) bool { return g.ArcadeGroup }),
		WorldZip:           stringOr(cached, "arcade.zip", func(g *ServerGroup) string { return g.WorldZip }),
		Plugin:             stringOr(cached, "Arcade.jar", func(g *ServerGroup) string { return g.Plugin }),
		ConfigPath:         stringOr(cached, "plugins/Arcade", func(g *ServerGroup) string { return g.ConfigPath }),
		PVP:                boolOr(cached, true, func(g *ServerGroup) bool { return g.PVP }),
		Tournament:         boolOr(cached, false, func(g *ServerGroup) bool { return g.Tournament }),
		TournamentPoints:   boolOr(cached, false, func(g *ServerGroup) bool { return g.TournamentPoints }),
		Games:              games,
		ServerType:         stringOr(cached, "Minigames", func(g *ServerGroup) string { return g.ServerType }),
		AddNoCheat:         boolOr(cached, true, func(g *ServerGroup) bool { return g.AddNoCheat }),
		AddWorldEdit:       boolOr(cached, false, func(g *ServerGroup) bool { return g.AddWorldEdit }),
		TeamRejoin:         boolOr(cached, false, func(g *ServerGroup) bool { return g.TeamRejoin }),
		TeamAutoJoin:       boolOr(cached, true, func(g *ServerGroup) bool { return g.TeamAutoJoin }),
		TeamForceBalance:   boolOr(cached, false, func(g *ServerGroup) bool { return g.TeamForceBalance }),
		GameAutoStart:      boolOr(cached, true, func(g *ServerGroup) bool { return g.GameAutoStart }),
		GameTimeout:        boolOr(cached, true, func(g *ServerGroup) bool { return g.GameTimeout }),
		GameVoting:         boolOr(cached, false, func(g *ServerGroup) bool { return g.GameVoting }),
		MapVoting:          boolOr(cached, true, func(g *ServerGroup) bool { return g.MapVoting }),
		RewardGems:         boolOr(cached, true, func(g *ServerGroup) bool { return g.RewardGems }),
		RewardItems:        boolOr(cached, true, func(g *ServerGroup) bool { return g.RewardItems }),
		RewardStats:        boolOr(cached, true, func(g *ServerGroup) bool { return g.RewardStats }),
		RewardAchievements: boolOr(cached, true, func(g *ServerGroup) bool { return g.RewardAchievements }),
		HotbarInventory:    boolOr(cached, true, func(g *ServerGroup) bool { return g.HotbarInventory }),
		HotbarHubClock:     boolOr(cached, true, func(g *ServerGroup) bool { return g.HotbarHubClock }),
		PlayerKickIdle:     boolOr(cached, true, func(g *ServerGroup) bool { return g.PlayerKickIdle }),
		TeamServer:         teamServer,
		BoosterGroup:       boosterGroup,
		NpcName:            npcName,
		ResourcePack:       optionalStringOr(cached, nil, func(g *ServerGroup) *string { return g.ResourcePack }),
		Region:             regionOr(cached, region.Default),
		PortalBottomCornerLocation: optionalStringOr(cached, nil, func(g *ServerGroup) *string { return g.PortalBottomCornerLocation }),
		PortalTopCornerLocation:    optionalStringOr(cached, nil, func(g *ServerGroup) *string { return g.PortalTopCornerLocation }),
	}
	return opts, nil
}

// defaultGames implements spec.md §4.B step 4's uncached-default branch:
// MixedArcade gets the first seven declared GameTypes, any other game gets
// just its own name.
func defaultGames(game catalog.GameType) *string {
	if game == catalog.MixedArcade {
		s := firstSevenGamesCSV()
		return &s
	}
	s := game.String()
	return &s
}

func boolOr(cached *ServerGroup, def bool, get func(*ServerGroup) bool) bool {
	if cached == nil {
		return def
	}
	return get(cached)
}

func stringOr(cached *ServerGroup, def string, get func(*ServerGroup) string) string {
	if cached == nil {
		return def
	}
	return get(cached)
}

func optionalStringOr(cached *ServerGroup, def *string, get func(*ServerGroup) *string) *string {
	if cached == nil {
		return def
	}
	return get(cached)
}

func regionOr(cached *ServerGroup, def region.Region) region.Region {
	if cached == nil {
		return def
	}
	return cached.Region
}

func optionalTeamServer(game catalog.GameType, cached *ServerGroup) *catalog.GameType {
	if cached == nil {
		if partner, ok := catalog.GameToTeamServer[game]; ok {
			p := partner
			return &p
		}
		return nil
	}
	if cached.TeamServerKey == nil {
		return nil
	}
	partner, ok := catalog.PrefixToGame[*cached.TeamServerKey]
	if !ok {
		return nil
	}
	return &partner
}

func optionalBoosterGroup(game catalog.GameType, cached *ServerGroup) *catalog.BoosterGroup {
	if cached == nil {
		if b, ok := catalog.GameToBoosterGroup[game]; ok {
			bb := b
			return &bb
		}
		return nil
	}
	if cached.BoosterGroup == nil {
		return nil
	}
	parsed, err := catalog.ParseBoosterGroup(*cached.BoosterGroup)
	if err != nil {
		return nil
	}
	return &parsed
}

func optionalNpcName(game catalog.GameType, cached *ServerGroup) *string {
	if cached == nil {
		if name, ok := catalog.GameToNpcName[game]; ok {
			n := name
			return &n
		}
		return nil
	}
	if cached.NpcName == nil || *cached.NpcName == "" {
		return nil
	}
	return cached.NpcName
}
