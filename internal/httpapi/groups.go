package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/catalog"
	"github.com/mineplex-ops/fleet-scheduler/internal/registry"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

// createGroupRequest names either a GameType template or a well-known
// GenericServer to resolve into a ServerGroup — mutually exclusive.
type createGroupRequest struct {
	Game    string `json:"game"`
	Generic string `json:"generic"`
}

func (s *Server) handleCreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var group *servergroup.ServerGroup

	switch {
	case req.Generic != "":
		resolved, err := servergroup.ResolveGeneric(ctx, s.sc.Cache, servergroup.GenericServer(req.Generic))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve generic server", "details": err.Error()})
			return
		}
		if resolved == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown generic server", "generic": req.Generic})
			return
		}
		group = resolved
	case req.Game != "":
		gameType, err := catalog.ParseGameType(req.Game)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game type", "details": err.Error()})
			return
		}
		game, err := servergroup.NewGame(ctx, s.sc.Cache, gameType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build game options", "details": err.Error()})
			return
		}
		group = servergroup.FromGame(game)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of game or generic is required"})
		return
	}

	if err := registry.Create(ctx, s.sc.Cache, group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create group", "details": err.Error()})
		return
	}
	s.stream.Broadcast(ctx, eventFor(eventGroupCreated, group))
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

func (s *Server) handleListGroups(c *gin.Context) {
	groups, err := registry.List(c.Request.Context(), s.sc.Cache)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list groups", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) handleGetGroup(c *gin.Context) {
	group, err := registry.Get(c.Request.Context(), s.sc.Cache, c.Param("prefix"))
	if err != nil {
		writeGroupLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

func (s *Server) handleDeleteGroup(c *gin.Context) {
	ctx := c.Request.Context()
	group, err := registry.Get(ctx, s.sc.Cache, c.Param("prefix"))
	if err != nil {
		writeGroupLookupError(c, err)
		return
	}
	if err := registry.Delete(ctx, s.sc.Cache, group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete group", "details": err.Error()})
		return
	}
	s.stream.Broadcast(ctx, eventFor(eventGroupDeleted, group))
	c.JSON(http.StatusOK, gin.H{"message": "group deleted"})
}

func writeGroupLookupError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read group", "details": err.Error()})
}
