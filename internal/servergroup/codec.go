package servergroup

import (
	"fmt"
	"strconv"

	"github.com/mineplex-ops/fleet-scheduler/internal/region"
)

// ServerGroup is the canonical persisted configuration for a fleet. It is a
// superset of GameOptions plus identity, resource, and bookkeeping fields.
// Identity is the prefix: ServerGroup.Name must equal ServerGroup.Prefix.
type ServerGroup struct {
	Name                       string
	Prefix                     string
	RAM                        uint16
	CPU                        uint8
	TotalServers               uint8
	JoinableServers            uint8
	PortSection                uint16
	Uptimes                    *string
	ArcadeGroup                bool
	WorldZip                   string
	Plugin                     string
	ConfigPath                 string
	Host                       *string
	MinPlayers                 uint8
	MaxPlayers                 uint8
	PVP                        bool
	Tournament                 bool
	TournamentPoints           bool
	HardMaxPlayerCap           bool
	Games                      *string
	Modes                      *string
	BoosterGroup               *string
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
	StaffOnly                  bool
	Whitelist                  bool
	ResourcePack               *string
	Region                     region.Region
	TeamServerKey              *string
	PortalBottomCornerLocation *string
	PortalTopCornerLocation    *string
	NpcName                    *string
}

func parseValue(prefix string, m map[string]string, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: servergroups.%s %q could not be found", ErrParsing, prefix, key)
	}
	return v, nil
}

func parseBoolOrDefault(prefix string, m map[string]string, key string) (bool, error) {
	switch m[key] {
	case "true":
		return true, nil
	case "false", "null", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: servergroups.%s %q is not a valid bool", ErrParsing, prefix, key)
	}
}

func parseU8(prefix string, m map[string]string, key string) (uint8, error) {
	raw, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: servergroups.%s %q (u8) could not be found", ErrParsing, prefix, key)
	}
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: servergroups.%s %q (u8): %v", ErrParsing, prefix, key, err)
	}
	return uint8(n), nil
}

func parseU16(prefix string, m map[string]string, key string) (uint16, error) {
	raw, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: servergroups.%s %q (u16) could not be found", ErrParsing, prefix, key)
	}
	n, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: servergroups.%s %q (u16): %v", ErrParsing, prefix, key, err)
	}
	return uint16(n), nil
}

func parseOptionalStr(m map[string]string, key string) *string {
	v, ok := m[key]
	if !ok || v == "" || v == "null" {
		return nil
	}
	return &v
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FromMap decodes a cache hash into a ServerGroup, per spec.md §4.C. It is
// total and explicit: any missing required key, unparseable number, or
// invariant violation (parsed prefix != name) is a fatal ErrParsing. An
// empty map is ErrNotFound.
func FromMap(m map[string]string) (*ServerGroup, error) {
	if len(m) == 0 {
		return nil, ErrNotFound
	}
	name, err := parseValue("", m, "name")
	if err != nil {
		return nil, fmt.Errorf("%w: ServerGroup's name could not be found", ErrParsing)
	}
	prefix := name
	gotPrefix, err := parseValue(prefix, m, "prefix")
	if err != nil {
		return nil, err
	}
	if gotPrefix != prefix {
		return nil, fmt.Errorf("%w: parsed prefix %q does not equal name %q", ErrParsing, gotPrefix, prefix)
	}

	g := &ServerGroup{Name: name, Prefix: prefix}

	if g.RAM, err = parseU16(prefix, m, "ram"); err != nil {
		return nil, err
	}
	if g.CPU, err = parseU8(prefix, m, "cpu"); err != nil {
		return nil, err
	}
	if g.TotalServers, err = parseU8(prefix, m, "totalServers"); err != nil {
		return nil, err
	}
	if g.JoinableServers, err = parseU8(prefix, m, "joinableServers"); err != nil {
		return nil, err
	}
	if g.PortSection, err = parseU16(prefix, m, "portSection"); err != nil {
		return nil, err
	}
	g.Uptimes = parseOptionalStr(m, "uptimes")
	if g.ArcadeGroup, err = parseBoolOrDefault(prefix, m, "arcadeGroup"); err != nil {
		return nil, err
	}
	if g.WorldZip, err = parseValue(prefix, m, "worldZip"); err != nil {
		return nil, err
	}
	if g.Plugin, err = parseValue(prefix, m, "plugin"); err != nil {
		return nil, err
	}
	if g.ConfigPath, err = parseValue(prefix, m, "configPath"); err != nil {
		return nil, err
	}
	g.Host = parseOptionalStr(m, "host")
	if g.MinPlayers, err = parseU8(prefix, m, "minPlayers"); err != nil {
		return nil, err
	}
	if g.MaxPlayers, err = parseU8(prefix, m, "maxPlayers"); err != nil {
		return nil, err
	}
	if g.PVP, err = parseBoolOrDefault(prefix, m, "pvp"); err != nil {
		return nil, err
	}
	if g.Tournament, err = parseBoolOrDefault(prefix, m, "tournament"); err != nil {
		return nil, err
	}
	if g.TournamentPoints, err = parseBoolOrDefault(prefix, m, "tournamentPoints"); err != nil {
		return nil, err
	}
	if g.HardMaxPlayerCap, err = parseBoolOrDefault(prefix, m, "hardMaxPlayerCap"); err != nil {
		return nil, err
	}
	g.Games = parseOptionalStr(m, "games")
	g.Modes = parseOptionalStr(m, "modes")
	g.BoosterGroup = parseOptionalStr(m, "boosterGroup")
	if g.ServerType, err = parseValue(prefix, m, "serverType"); err != nil {
		return nil, err
	}
	if g.AddNoCheat, err = parseBoolOrDefault(prefix, m, "addNoCheat"); err != nil {
		return nil, err
	}
	if g.AddWorldEdit, err = parseBoolOrDefault(prefix, m, "addWorldEdit"); err != nil {
		return nil, err
	}
	if g.TeamRejoin, err = parseBoolOrDefault(prefix, m, "teamRejoin"); err != nil {
		return nil, err
	}
	if g.TeamAutoJoin, err = parseBoolOrDefault(prefix, m, "teamAutoJoin"); err != nil {
		return nil, err
	}
	if g.TeamForceBalance, err = parseBoolOrDefault(prefix, m, "teamForceBalance"); err != nil {
		return nil, err
	}
	if g.GameAutoStart, err = parseBoolOrDefault(prefix, m, "gameAutoStart"); err != nil {
		return nil, err
	}
	if g.GameTimeout, err = parseBoolOrDefault(prefix, m, "gameTimeout"); err != nil {
		return nil, err
	}
	if g.GameVoting, err = parseBoolOrDefault(prefix, m, "gameVoting"); err != nil {
		return nil, err
	}
	if g.MapVoting, err = parseBoolOrDefault(prefix, m, "mapVoting"); err != nil {
		return nil, err
	}
	if g.RewardGems, err = parseBoolOrDefault(prefix, m, "rewardGems"); err != nil {
		return nil, err
	}
	if g.RewardItems, err = parseBoolOrDefault(prefix, m, "rewardItems"); err != nil {
		return nil, err
	}
	if g.RewardStats, err = parseBoolOrDefault(prefix, m, "rewardStats"); err != nil {
		return nil, err
	}
	if g.RewardAchievements, err = parseBoolOrDefault(prefix, m, "rewardAchievements"); err != nil {
		return nil, err
	}
	if g.HotbarInventory, err = parseBoolOrDefault(prefix, m, "hotbarInventory"); err != nil {
		return nil, err
	}
	if g.HotbarHubClock, err = parseBoolOrDefault(prefix, m, "hotbarHubClock"); err != nil {
		return nil, err
	}
	if g.PlayerKickIdle, err = parseBoolOrDefault(prefix, m, "playerKickIdle"); err != nil {
		return nil, err
	}
	if g.StaffOnly, err = parseBoolOrDefault(prefix, m, "staffOnly"); err != nil {
		return nil, err
	}
	if g.Whitelist, err = parseBoolOrDefault(prefix, m, "whitelist"); err != nil {
		return nil, err
	}
	g.ResourcePack = parseOptionalStr(m, "resourcePack")

	regionRaw, ok := m["region"]
	if !ok {
		regionRaw = ""
	}
	r, err := region.Parse(regionRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: servergroups.%s region: %v", ErrParsing, prefix, err)
	}
	g.Region = r

	g.TeamServerKey = parseOptionalStr(m, "teamServerKey")
	g.PortalBottomCornerLocation = parseOptionalStr(m, "portalBottomCornerLocation")
	g.PortalTopCornerLocation = parseOptionalStr(m, "portalTopCornerLocation")
	g.NpcName = parseOptionalStr(m, "npcName")

	return g, nil
}

// ToMap encodes a ServerGroup into the cache hash representation, per
// spec.md §4.C. Every field round-trips through FromMap(ToMap(g)) == g
// (invariant I1).
func (g *ServerGroup) ToMap() map[string]string {
	return map[string]string{
		"name":                       g.Name,
		"prefix":                     g.Prefix,
		"ram":                        strconv.FormatUint(uint64(g.RAM), 10),
		"cpu":                        strconv.FormatUint(uint64(g.CPU), 10),
		"totalServers":               strconv.FormatUint(uint64(g.TotalServers), 10),
		"joinableServers":            strconv.FormatUint(uint64(g.JoinableServers), 10),
		"portSection":                strconv.FormatUint(uint64(g.PortSection), 10),
		"uptimes":                    orEmpty(g.Uptimes),
		"arcadeGroup":                boolStr(g.ArcadeGroup),
		"worldZip":                   g.WorldZip,
		"plugin":                     g.Plugin,
		"configPath":                 g.ConfigPath,
		"host":                       orEmpty(g.Host),
		"minPlayers":                 strconv.FormatUint(uint64(g.MinPlayers), 10),
		"maxPlayers":                 strconv.FormatUint(uint64(g.MaxPlayers), 10),
		"pvp":                        boolStr(g.PVP),
		"tournament":                 boolStr(g.Tournament),
		"tournamentPoints":           boolStr(g.TournamentPoints),
		"hardMaxPlayerCap":           boolStr(g.HardMaxPlayerCap),
		"games":                      orEmpty(g.Games),
		"modes":                      orEmpty(g.Modes),
		"boosterGroup":               orEmpty(g.BoosterGroup),
		"serverType":                 g.ServerType,
		"addNoCheat":                 boolStr(g.AddNoCheat),
		"addWorldEdit":               boolStr(g.AddWorldEdit),
		"teamRejoin":                 boolStr(g.TeamRejoin),
		"teamAutoJoin":               boolStr(g.TeamAutoJoin),
		"teamForceBalance":           boolStr(g.TeamForceBalance),
		"gameAutoStart":              boolStr(g.GameAutoStart),
		"gameTimeout":                boolStr(g.GameTimeout),
		"gameVoting":                 boolStr(g.GameVoting),
		"mapVoting":                  boolStr(g.MapVoting),
		"rewardGems":                 boolStr(g.RewardGems),
		"rewardItems":                boolStr(g.RewardItems),
		"rewardStats":                boolStr(g.RewardStats),
		"rewardAchievements":         boolStr(g.RewardAchievements),
		"hotbarInventory":            boolStr(g.HotbarInventory),
		"hotbarHubClock":             boolStr(g.HotbarHubClock),
		"playerKickIdle":             boolStr(g.PlayerKickIdle),
		"staffOnly":                  boolStr(g.StaffOnly),
		"whitelist":                  boolStr(g.Whitelist),
		"resourcePack":               orEmpty(g.ResourcePack),
		"region":                     g.Region.String(),
		"teamServerKey":              orEmpty(g.TeamServerKey),
		"portalBottomCornerLocation": orEmpty(g.PortalBottomCornerLocation),
		"portalTopCornerLocation":    orEmpty(g.PortalTopCornerLocation),
		"npcName":                    orEmpty(g.NpcName),
	}
}
