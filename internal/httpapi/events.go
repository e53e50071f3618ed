package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/eventstream"
)

const (
	eventGroupCreated   = eventstream.GroupCreated
	eventGroupDeleted   = eventstream.GroupDeleted
	eventServerPlaced   = eventstream.ServerPlaced
	eventServerRemoved  = eventstream.ServerRemoved
	eventInstanceStatus = eventstream.InstanceStatus
)

func eventFor(kind eventstream.EventType, data interface{}) eventstream.Event {
	return eventstream.Event{Type: kind, Data: data}
}

// handleEvents upgrades the request to a websocket subscription carrying
// every group/placement/status event the scheduler broadcasts.
func (s *Server) handleEvents(c *gin.Context) {
	if err := s.stream.Subscribe(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open event stream", "details": err.Error()})
	}
}
