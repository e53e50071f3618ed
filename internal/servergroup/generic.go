package servergroup

import (
	"context"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
)

// GenericServer is a well-known singleton group that resolves straight to a
// ServerGroup without going through a player-facing GameType selection —
// the hub-style fleets every deployment has exactly one of.
type GenericServer string

const (
	Lobby    GenericServer = "Lobby"
	ClansHub GenericServer = "ClansHub"
	BetaHub  GenericServer = "BetaHub"
)

// gameTypeFor maps a GenericServer to the catalog GameType it shares a
// prefix with, so its template can be built through the usual Game/Build
// pipeline.
var gameTypeFor = map[GenericServer]catalog.GameType{
	Lobby:    catalog.Lobby,
	ClansHub: catalog.ClansHub,
	BetaHub:  catalog.BetaHub,
}

// ResolveGeneric builds the template ServerGroup for name, reconciles its
// port section against the cache, then overwrites it with the cached value
// if one already exists. Unknown GenericServer values return (nil, nil).
func ResolveGeneric(ctx context.Context, c *cache.Client, name GenericServer) (*ServerGroup, error) {
	gameType, ok := gameTypeFor[name]
	if !ok {
		return nil, nil
	}
	game, err := NewGame(ctx, c, gameType)
	if err != nil {
		return nil, err
	}
	group := FromGame(game)
	if err := LoadExistingCache(ctx, c, group); err != nil {
		return nil, err
	}
	return group, nil
}
