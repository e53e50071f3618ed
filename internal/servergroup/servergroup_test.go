package servergroup

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
)

func newTestCache(t *testing.T) *cache.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return cache.NewFromCmdable(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func sampleGroup() *ServerGroup {
	return &ServerGroup{
		Name: "MIN", Prefix: "MIN", RAM: 512, CPU: 1,
		PortSection: 25565, WorldZip: "arcade.zip", Plugin: "Arcade.jar",
		ConfigPath: "plugins/Arcade", MinPlayers: 8, MaxPlayers: 24,
		PVP: true, ServerType: "Minigames", Region: region.US,
	}
}

func TestToMap_FromMap_RoundTrips(t *testing.T) {
	g := sampleGroup()
	decoded, err := FromMap(g.ToMap())
	require.NoError(t, err)
	assert.Equal(t, g, decoded)
}

func TestFromMap_EmptyIsNotFound(t *testing.T) {
	_, err := FromMap(map[string]string{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFromMap_MismatchedPrefixIsParsingError(t *testing.T) {
	g := sampleGroup()
	m := g.ToMap()
	m["prefix"] = "OTHER"
	_, err := FromMap(m)
	assert.ErrorIs(t, err, ErrParsing)
}

func TestFromMap_MissingRequiredFieldIsParsingError(t *testing.T) {
	g := sampleGroup()
	m := g.ToMap()
	delete(m, "ram")
	_, err := FromMap(m)
	assert.ErrorIs(t, err, ErrParsing)
}

func TestBuild_MixedArcadeDefaultsToFirstSevenGames(t *testing.T) {
	c := newTestCache(t)
	opts, err := Build(context.Background(), c, catalog.MixedArcade)
	require.NoError(t, err)
	require.NotNil(t, opts.Games)
	assert.Equal(t, "Micro,MixedArcade,Cards,Draw,Build,BuildMavericks,Tug", *opts.Games)
}

func TestBuild_SoloGameDefaultsToOwnName(t *testing.T) {
	c := newTestCache(t)
	opts, err := Build(context.Background(), c, catalog.SkyWars)
	require.NoError(t, err)
	require.NotNil(t, opts.Games)
	assert.Equal(t, "SkyWars", *opts.Games)
	assert.Equal(t, "SW", opts.Prefix)
}

func TestBuild_UsesCachedValuesWhenPresent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	existing := sampleGroup()
	existing.Name, existing.Prefix = "SW", "SW"
	existing.MaxPlayers = 99
	require.NoError(t, Create(ctx, c, existing))

	opts, err := Build(ctx, c, catalog.SkyWars)
	require.NoError(t, err)
	assert.EqualValues(t, 99, opts.MaxPlayers)
}

func TestFromGame_SetsCountersToZeroAndCopiesTemplate(t *testing.T) {
	c := newTestCache(t)
	game, err := NewGame(context.Background(), c, catalog.SkyWars)
	require.NoError(t, err)

	group := FromGame(game)
	assert.Equal(t, "SW", group.Prefix)
	assert.EqualValues(t, 0, group.TotalServers)
	assert.EqualValues(t, 0, group.JoinableServers)
	assert.EqualValues(t, 512, group.RAM)
	assert.EqualValues(t, 1, group.CPU)
	assert.False(t, group.HardMaxPlayerCap)
}

func TestCreate_IsIdempotent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	g := sampleGroup()

	require.NoError(t, Create(ctx, c, g))
	firstSection := g.PortSection

	again := sampleGroup()
	again.PortSection = 30000 // Create is a no-op on the hash once cached
	require.NoError(t, Create(ctx, c, again))

	fetched, err := Get(ctx, c, "MIN")
	require.NoError(t, err)
	assert.Equal(t, firstSection, fetched.PortSection)
}

func TestGet_NotFound(t *testing.T) {
	c := newTestCache(t)
	_, err := Get(context.Background(), c, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, Create(ctx, c, sampleGroup()))

	groups, err := List(ctx, c)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "MIN", groups[0].Prefix)
}

func TestDelete_IsIdempotent(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	g := sampleGroup()
	require.NoError(t, Create(ctx, c, g))

	require.NoError(t, Delete(ctx, c, g))
	require.NoError(t, Delete(ctx, c, g))

	_, err := Get(ctx, c, "MIN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveGeneric_UnknownReturnsNilNil(t *testing.T) {
	c := newTestCache(t)
	group, err := ResolveGeneric(context.Background(), c, GenericServer("NotAThing"))
	require.NoError(t, err)
	assert.Nil(t, group)
}

func TestResolveGeneric_Lobby(t *testing.T) {
	c := newTestCache(t)
	group, err := ResolveGeneric(context.Background(), c, Lobby)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, "Lobby", group.Prefix)
}
