package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/eventstream"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/scheduler"
)

// Server is the HTTP surface over one scheduler Context and its fleet. Per
// spec.md §5, the node list inside a Context is mutated only by the
// placement engine and must not be shared across goroutines without
// serialization — fleetMu is that serialization.
type Server struct {
	sc       *scheduler.Context
	fleet    *dedicated.DedicatedServers
	fleetMu  sync.Mutex
	launcher dedicated.Launcher
	stream   *eventstream.Broadcaster
	engine   *gin.Engine
}

// New builds a Server wired to sc's cache connection, fleet, launcher, and
// event broadcaster.
func New(sc *scheduler.Context, fleet *dedicated.DedicatedServers, launcher dedicated.Launcher, stream *eventstream.Broadcaster) *Server {
	s := &Server{sc: sc, fleet: fleet, launcher: launcher, stream: stream}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(sc.Logger))

	engine.GET("/health", s.handleHealth)

	groups := engine.Group("/groups")
	groups.POST("", s.handleCreateGroup)
	groups.GET("", s.handleListGroups)
	groups.GET("/:prefix", s.handleGetGroup)
	groups.DELETE("/:prefix", s.handleDeleteGroup)
	groups.POST("/:prefix/instances", s.handlePlaceInstance)
	groups.DELETE("/:prefix/instances/:num", s.handleRemoveInstance)

	status := engine.Group("/status")
	status.GET("", s.handleListStatus)
	status.GET("/empty", s.handleEmptyStatus)
	status.GET("/:region/:name", s.handleGetStatus)

	engine.POST("/admin/:region/:name/command", s.handleAdminCommand)
	engine.GET("/events", s.handleEvents)

	s.engine = engine
	return s
}

// ServeHTTP satisfies http.Handler so a Server can be passed straight to
// http.Server.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "fleet-scheduler"})
}

func (s *Server) logger() logging.Logger { return s.sc.Logger }
