package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/registry"
)

// placeInstanceRequest controls whether placement also waits for the
// instance's first heartbeat (per spec.md §4.F launchServer) or only
// reserves the slot, leaving an external agent to start the process.
type placeInstanceRequest struct {
	Launch bool `json:"launch"`
}

// handlePlaceInstance implements spec.md §4.G's composite action: obtain
// the next server number, pick the best node, and add the instance to it —
// atomic from the caller's perspective because fleetMu serializes it.
func (s *Server) handlePlaceInstance(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := registry.Get(ctx, s.sc.Cache, c.Param("prefix"))
	if err != nil {
		writeGroupLookupError(c, err)
		return
	}

	var req placeInstanceRequest
	_ = c.ShouldBindJSON(&req)

	s.fleetMu.Lock()
	serverNum := s.fleet.GetNextServerNum(group)
	node := s.fleet.GetBestDedicatedServer(group)
	if node == nil {
		s.fleetMu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "no node has space for this group"})
		return
	}
	inst, err := node.AddServer(group, serverNum)
	s.fleetMu.Unlock()
	if err != nil {
		writePlacementError(c, err)
		return
	}
	s.stream.Broadcast(ctx, eventFor(eventServerPlaced, inst))

	if !req.Launch || s.launcher == nil {
		c.JSON(http.StatusCreated, gin.H{"instance": inst, "node": node.Name})
		return
	}

	launched, err := dedicated.LaunchServer(ctx, s.sc.Cache, s.launcher, node, group, serverNum)
	if err != nil {
		s.logger().Warn(ctx, "launch failed, releasing reserved slot",
			logging.String("instance", inst.Name), logging.Error(err))
		s.fleetMu.Lock()
		_ = node.RemoveServer(group, serverNum)
		s.fleetMu.Unlock()
		writePlacementError(c, err)
		return
	}
	s.stream.Broadcast(ctx, eventFor(eventInstanceStatus, launched))
	c.JSON(http.StatusCreated, gin.H{"instance": launched, "node": node.Name})
}

func (s *Server) handleRemoveInstance(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := registry.Get(ctx, s.sc.Cache, c.Param("prefix"))
	if err != nil {
		writeGroupLookupError(c, err)
		return
	}
	serverNum, err := strconv.Atoi(c.Param("num"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid server number"})
		return
	}

	s.fleetMu.Lock()
	removedFrom := ""
	for _, node := range s.fleet.Servers {
		if node.Region != group.Region {
			continue
		}
		if rmErr := node.RemoveServer(group, serverNum); rmErr == nil {
			removedFrom = node.Name
			break
		}
	}
	s.fleetMu.Unlock()

	if removedFrom == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "instance not found on any node"})
		return
	}
	s.stream.Broadcast(ctx, eventFor(eventServerRemoved, gin.H{"group": group.Name, "serverNum": serverNum}))
	c.JSON(http.StatusOK, gin.H{"message": "instance removed", "node": removedFrom})
}

func writePlacementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dedicated.ErrNoSpace):
		c.JSON(http.StatusConflict, gin.H{"error": "no space", "details": err.Error()})
	case errors.Is(err, dedicated.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate server number", "details": err.Error()})
	case errors.Is(err, dedicated.ErrRegionMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "region mismatch", "details": err.Error()})
	case errors.Is(err, dedicated.ErrMinecraftServerNotRunning):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "server did not start in time", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "placement failed", "details": err.Error()})
	}
}
