package catalog

// PlayerCount is a (min, max) player bound for a game type.
type PlayerCount struct {
	Min uint8
	Max uint8
}

// DefaultPlayerCount is used for any GameType absent from GameToPlayerCount.
var DefaultPlayerCount = PlayerCount{Min: 8, Max: 16}

// GameToPrefix is bijective on the subset of GameTypes that have a standalone
// prefix. Arcade sub-games played only inside the MixedArcade rotation (Micro,
// Cards, Draw, Build, BuildMavericks, Tug, Lumber, Bounty, Snake, Spleef,
// TurfWars, Paintball) are intentionally absent: they have no prefix or
// cache-backed ServerGroup of their own.
var GameToPrefix = map[GameType]string{
	MixedArcade:        "MIN",
	CakeWars4:          "CW4",
	CakeWars3:          "CW3",
	Clans:              "Clans",
	ClansHub:           "ClansHub",
	SkyWars:            "SW",
	SkyWarsTeams:       "SWT",
	SurvivalGames:      "HG",
	SurvivalGamesTeams: "HGT",
	Bridges:            "BR",
	Smash:              "SSM",
	Champions:          "CHAMP",
	Gladiators:         "GLAD",
	MineStrike:         "MS",
	HideAndSeek:        "HAS",
	Lobby:              "Lobby",
	BetaHub:            "BetaHub",
	DragonEscape:       "DE",
	MonsterMaze:        "MM",
	ChristmasChaos:     "CC",
	HalloweenHorror:    "HAL",
	UHC:                "UHC",
	WitherAssault:       "WA",
	TurboKartRacers:    "TKR",
	Wizards:            "WZ",
	Gravity:            "GRAV",
	Evolution:          "EVO",
	BaconBrawl:         "BACON",
	BlockHunt:          "BH",
	CastleSiege:        "CS",
	Quakecraft:         "QC",
}

// PrefixToGame is the reverse of GameToPrefix, built once at init time.
var PrefixToGame = func() map[string]GameType {
	m := make(map[string]GameType, len(GameToPrefix))
	for game, prefix := range GameToPrefix {
		m[prefix] = game
	}
	return m
}()

// GameToPlayerCount overrides DefaultPlayerCount for specific game types.
var GameToPlayerCount = map[GameType]PlayerCount{
	MixedArcade:   {Min: 8, Max: 24},
	CakeWars4:     {Min: 8, Max: 40},
	CakeWars3:     {Min: 8, Max: 40},
	SkyWars:       {Min: 2, Max: 16},
	SkyWarsTeams:  {Min: 2, Max: 16},
	SurvivalGames: {Min: 2, Max: 40},
	Bridges:       {Min: 2, Max: 20},
	MineStrike:    {Min: 2, Max: 10},
	Smash:         {Min: 2, Max: 16},
	Champions:     {Min: 2, Max: 8},
	BlockHunt:     {Min: 2, Max: 16},
}

// GameToNpcName names the hub NPC that launches a given game, for the subset
// of games that are reachable from an NPC.
var GameToNpcName = map[GameType]string{
	MixedArcade:   "Arcade Games",
	CakeWars4:     "Cake Wars",
	CakeWars3:     "Cake Wars",
	SkyWars:       "SkyWars",
	SurvivalGames: "Survival Games",
	Bridges:       "The Bridges",
	MineStrike:    "MineStrike",
	Smash:         "Super Smash Mobs",
	Champions:     "Champions",
	BlockHunt:     "Block Hunt",
}

// GameToBoosterGroup assigns each game type to its marketing booster
// category. Games absent from this table have no booster group.
var GameToBoosterGroup = map[GameType]BoosterGroup{
	MixedArcade:    BoosterArcade,
	Draw:           BoosterDrawMyThing,
	Build:          BoosterMasterBuilders,
	BuildMavericks: BoosterMasterBuilders,
	CakeWars4:      BoosterCakeWars,
	CakeWars3:      BoosterCakeWars,
	SurvivalGames:       BoosterSurvivalGames,
	SurvivalGamesTeams:  BoosterSurvivalGames,
	SkyWars:             BoosterSkywars,
	SkyWarsTeams:        BoosterSkywars,
	Bridges:             BoosterBridges,
	MineStrike:          BoosterMineStrike,
	Smash:               BoosterSmashMobs,
	Champions:           BoosterChampions,
	BlockHunt:           BoosterBlockHunt,
	Micro:    BoosterNanoGames,
	Snake:    BoosterNanoGames,
	Spleef:   BoosterNanoGames,
	TurfWars: BoosterNanoGames,
	Lumber:   BoosterNanoGames,
	Bounty:   BoosterNanoGames,
}

// GameToTeamServer links a solo game type to its team-mode partner.
var GameToTeamServer = map[GameType]GameType{
	SkyWars:       SkyWarsTeams,
	SurvivalGames: SurvivalGamesTeams,
	Clans:         ClansHub,
}
