package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/admin"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/status"
)

// adminCommandRequest carries the RCON password out-of-band per request —
// this surface never persists credentials, matching spec.md §1's
// no-multi-tenant-authorization non-goal (there is no account system to
// hang a stored credential off of).
type adminCommandRequest struct {
	Password string `json:"password"`
	Command  string `json:"command"`
}

// handleAdminCommand dials the named instance's RCON listener (resolved
// from its published heartbeat's public address/port) and executes a
// single console command against it.
func (s *Server) handleAdminCommand(c *gin.Context) {
	r, err := region.Parse(c.Param("region"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid region", "details": err.Error()})
		return
	}
	var req adminCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	srv, err := status.Get(c.Request.Context(), s.sc.Cache, c.Param("name"), r)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve instance", "details": err.Error()})
		return
	}

	address := fmt.Sprintf("%s:%d", srv.PublicAddress, srv.Port)
	client, err := admin.Dial(address, req.Password)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to connect to instance", "details": err.Error()})
		return
	}
	defer client.Close()

	response, err := client.SendCommand(req.Command)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "command failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}
