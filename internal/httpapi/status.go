package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/status"
)

func (s *Server) handleGetStatus(c *gin.Context) {
	r, err := region.Parse(c.Param("region"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid region", "details": err.Error()})
		return
	}
	srv, err := status.Get(c.Request.Context(), s.sc.Cache, c.Param("name"), r)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": srv})
}

func (s *Server) handleListStatus(c *gin.Context) {
	all, err := status.GetAll(c.Request.Context(), s.sc.Cache)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": all})
}

func (s *Server) handleEmptyStatus(c *gin.Context) {
	empty, err := status.GetEmptyServers(c.Request.Context(), s.sc.Cache, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list empty instances", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"instances": empty})
}
