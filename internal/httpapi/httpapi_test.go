package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mineplex-ops/fleet-scheduler/internal/cache"
	"github.com/mineplex-ops/fleet-scheduler/internal/config"
	"github.com/mineplex-ops/fleet-scheduler/internal/dedicated"
	"github.com/mineplex-ops/fleet-scheduler/internal/eventstream"
	"github.com/mineplex-ops/fleet-scheduler/internal/logging"
	"github.com/mineplex-ops/fleet-scheduler/internal/region"
	"github.com/mineplex-ops/fleet-scheduler/internal/scheduler"
	"github.com/mineplex-ops/fleet-scheduler/internal/servergroup"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := cache.NewFromCmdable(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	sc := scheduler.New(config.Default(), c, logging.NewLogger("test"))

	fleet := &dedicated.DedicatedServers{Servers: []*dedicated.DedicatedServer{
		{
			Name:            "node-1",
			Region:          region.US,
			AvailableCPU:    8,
			AvailableRAM:    4096,
			MaxCPU:          8,
			MaxRAM:          4096,
			ServerInstances: make(map[string][]*dedicated.MCSInstance),
		},
	}}

	stream := eventstream.New(logging.NewLogger("test"))
	return New(sc, fleet, nil, stream)
}

func postJSON(s *Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

type groupResponse struct {
	Group *servergroup.ServerGroup `json:"group"`
}

func TestHandleCreateAndGetGroup(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(s, "/groups", `{"generic":"Lobby"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created groupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Group)

	req := httptest.NewRequest(http.MethodGet, "/groups/"+created.Group.Prefix, nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGetGroup_NotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/groups/NOPE", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreateGroup_RejectsUnknownGame(t *testing.T) {
	s := newTestServer(t)
	w := postJSON(s, "/groups", `{"game":"NotAGame"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePlaceInstance_WithoutLaunch(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(s, "/groups", `{"generic":"Lobby"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created groupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = postJSON(s, "/groups/"+created.Group.Prefix+"/instances", `{"launch":false}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandleRemoveInstance_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(s, "/groups", `{"generic":"Lobby"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created groupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/groups/"+created.Group.Prefix+"/instances/9", nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListStatus_Empty(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
