// Package eventstream broadcasts placement and instance-status events to
// subscribed websocket clients, adapted from Terkea's hand-rolled
// wsConnections map in cmd/api-server/main.go onto a small dedicated type.
package eventstream

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventType names the kind of change a broadcast Event describes.
type EventType string

const (
	GroupCreated   EventType = "GROUP_CREATED"
	GroupDeleted   EventType = "GROUP_DELETED"
	ServerPlaced   EventType = "SERVER_PLACED"
	ServerRemoved  EventType = "SERVER_REMOVED"
	InstanceStatus EventType = "INSTANCE_STATUS"
)

// Event is one fleet-state change, broadcast verbatim to every subscriber.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Broadcaster fans Event values out to every connected websocket client.
type Broadcaster struct {
	mu     sync.RWMutex
	conns  map[*websocket.Conn]struct{}
	logger logging.Logger
}

// New builds an empty Broadcaster.
func New(logger logging.Logger) *Broadcaster {
	return &Broadcaster{conns: make(map[*websocket.Conn]struct{}), logger: logger}
}

// Subscribe upgrades an incoming HTTP request to a websocket connection and
// registers it for future broadcasts. The connection is read in a
// goroutine solely to detect disconnects (control frames); subscribers
// never send data this stream cares about.
func (b *Broadcaster) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()

	go b.readUntilClose(conn)
	return nil
}

func (b *Broadcaster) readUntilClose(conn *websocket.Conn) {
	defer b.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Broadcaster) remove(conn *websocket.Conn) {
	b.mu.Lock()
	delete(b.conns, conn)
	b.mu.Unlock()
	_ = conn.Close()
}

// Broadcast sends event as JSON to every connected subscriber, dropping
// (and closing) any connection whose write fails.
func (b *Broadcaster) Broadcast(ctx context.Context, event Event) {
	b.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(b.conns))
	for conn := range b.conns {
		targets = append(targets, conn)
	}
	b.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.WriteJSON(event); err != nil {
			b.logger.Warn(ctx, "dropping subscriber after write failure", logging.Error(err))
			b.remove(conn)
		}
	}
}
