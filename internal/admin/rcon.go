// Package admin is the RCON admin passthrough (SPEC_FULL.md's supplemental
// feature 4): sending console
// commands to a running instance over RCON and parsing its player list.
//
// Adapted from Terkea's hand-rolled packet codec
// (k8s/operator/pkg/rcon/client.go) onto github.com/gorcon/rcon, which
// implements the same Source RCON framing as a maintained library instead
// of reimplementing the wire protocol here.
package admin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorcon/rcon"
)

const dialTimeout = 5 * time.Second

// Client sends console commands to one running instance.
type Client struct {
	conn *rcon.Conn
}

// Dial authenticates against an instance's RCON listener at address
// ("host:port").
func Dial(address, password string) (*Client, error) {
	conn, err := rcon.Dial(address, password, rcon.SetDialTimeout(dialTimeout))
	if err != nil {
		return nil, fmt.Errorf("admin: dialing %s: %w", address, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// SendCommand executes an arbitrary console command and returns its raw
// response.
func (c *Client) SendCommand(command string) (string, error) {
	resp, err := c.conn.Execute(command)
	if err != nil {
		return "", fmt.Errorf("admin: executing %q: %w", command, err)
	}
	return resp, nil
}

// PlayerInfo is the parsed response of the "list" console command.
type PlayerInfo struct {
	Online  int
	Max     int
	Players []string
}

var playerListPattern = regexp.MustCompile(`There are (\d+) of a max(?: of)? (\d+) players online`)

// GetPlayerInfo sends "list" and parses the response.
func (c *Client) GetPlayerInfo() (*PlayerInfo, error) {
	resp, err := c.SendCommand("list")
	if err != nil {
		return nil, err
	}
	return parsePlayerList(resp)
}

func parsePlayerList(response string) (*PlayerInfo, error) {
	matches := playerListPattern.FindStringSubmatch(response)
	if len(matches) < 3 {
		return nil, fmt.Errorf("admin: could not parse player list: %q", response)
	}
	online, _ := strconv.Atoi(matches[1])
	max, _ := strconv.Atoi(matches[2])

	info := &PlayerInfo{Online: online, Max: max, Players: []string{}}
	if idx := strings.IndexByte(response, ':'); idx >= 0 && idx < len(response)-1 {
		for _, name := range strings.Split(response[idx+1:], ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				info.Players = append(info.Players, trimmed)
			}
		}
	}
	return info, nil
}
