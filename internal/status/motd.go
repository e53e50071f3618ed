package status

import (
	"encoding/json"
	"fmt"

	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
)

// DisplayStatus is a live game server's display phase.
type DisplayStatus string

const (
	AlwaysOpen DisplayStatus = "ALWAYS_OPEN"
	Starting   DisplayStatus = "STARTING"
	Voting     DisplayStatus = "VOTING"
	Waiting    DisplayStatus = "WAITING"
	InProgress DisplayStatus = "IN_PROGRESS"
	Closing    DisplayStatus = "CLOSING"
)

// JoinStatus is whether a live game server currently accepts joins.
type JoinStatus string

const (
	Open      JoinStatus = "OPEN"
	RanksOnly JoinStatus = "RANKS_ONLY"
	Closed    JoinStatus = "CLOSED"
)

// GameInfo is the structured form of a server's MOTD.
type GameInfo struct {
	Game          catalog.GameType
	Mode          *string
	Map           *string
	Timer         int8
	VotingOn      *string
	HostRank      *string
	DisplayStatus DisplayStatus
	JoinStatus    JoinStatus
}

// Motd is the polymorphic MOTD tagged variant: either plain text or a
// structured GameInfo. Parsing discriminates on the JSON value's kind.
// Exactly one of Plain or Game is non-nil.
type Motd struct {
	Plain *string
	Game  *GameInfo
}

func jsonString(raw json.RawMessage, key string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %q expected string: %v", ErrParsing, key, err)
	}
	return s, nil
}

func jsonOptionalString(m map[string]json.RawMessage, key string) *string {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func jsonInt8(m map[string]json.RawMessage, key string) (int8, error) {
	raw, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing key %q", ErrParsing, key)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w: %q expected number: %v", ErrParsing, key, err)
	}
	return int8(n), nil
}

func parseGameInfo(m map[string]json.RawMessage) (*GameInfo, error) {
	rawGame, ok := m["_game"]
	if !ok {
		return nil, fmt.Errorf("%w: GameInfo missing key \"_game\"", ErrParsing)
	}
	gameName, err := jsonString(rawGame, "_game")
	if err != nil {
		return nil, err
	}
	gameType, err := catalog.ParseGameType(gameName)
	if err != nil {
		return nil, fmt.Errorf("%w: GameInfo _game %q not found", ErrParsing, gameName)
	}

	timer, err := jsonInt8(m, "_timer")
	if err != nil {
		return nil, err
	}

	rawStatus, ok := m["_status"]
	if !ok {
		return nil, fmt.Errorf("%w: GameInfo missing key \"_status\"", ErrParsing)
	}
	statusStr, err := jsonString(rawStatus, "_status")
	if err != nil {
		return nil, err
	}
	displayStatus := DisplayStatus(statusStr)
	switch displayStatus {
	case AlwaysOpen, Starting, Voting, Waiting, InProgress, Closing:
	default:
		return nil, fmt.Errorf("%w: GameInfo _status %q not a valid display status", ErrParsing, statusStr)
	}

	rawJoinable, ok := m["_joinable"]
	if !ok {
		return nil, fmt.Errorf("%w: GameInfo missing key \"_joinable\"", ErrParsing)
	}
	joinableStr, err := jsonString(rawJoinable, "_joinable")
	if err != nil {
		return nil, err
	}
	joinStatus := JoinStatus(joinableStr)
	switch joinStatus {
	case Open, RanksOnly, Closed:
	default:
		return nil, fmt.Errorf("%w: GameInfo _joinable %q not a valid join status", ErrParsing, joinableStr)
	}

	return &GameInfo{
		Game:          gameType,
		Mode:          jsonOptionalString(m, "_mode"),
		Map:           jsonOptionalString(m, "_map"),
		Timer:         timer,
		VotingOn:      jsonOptionalString(m, "_votingOn"),
		HostRank:      jsonOptionalString(m, "_hostRank"),
		DisplayStatus: displayStatus,
		JoinStatus:    joinStatus,
	}, nil
}

// parseMotd discriminates on the raw JSON value's kind: a JSON string
// becomes Motd.Plain, a JSON object becomes Motd.Game.
func parseMotd(raw json.RawMessage) (Motd, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return Motd{Plain: &asString}, nil
	}
	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		info, err := parseGameInfo(asObject)
		if err != nil {
			return Motd{}, err
		}
		return Motd{Game: info}, nil
	}
	return Motd{}, fmt.Errorf("%w: _motd expected object or string", ErrParsing)
}
