package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/config"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/server"
)

type snapshotBody struct {
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	Map      []string  `json:"map"`
	Phase    string    `json:"phase"`
	Outcome  string    `json:"outcome"`
	Decision string    `json:"decision"`
	Agent    *grid.Pos `json:"agent"`
	Steps    int       `json:"steps"`
	Lines    []string  `json:"lines"`
}

type reportBody struct {
	Decision string   `json:"decision"`
	Moved    bool     `json:"moved"`
	To       grid.Pos `json:"to"`
	Outcome  string   `json:"outcome"`
}

type createBody struct {
	ID       string       `json:"id"`
	Snapshot snapshotBody `json:"snapshot"`
}

type tickBody struct {
	Reports  []reportBody `json:"reports"`
	Snapshot snapshotBody `json:"snapshot"`
}

var openMap = []string{
	"S....",
	".....",
	".....",
	".....",
	"....G",
}

// ServerSuite drives the HTTP surface against a fresh server per test.
type ServerSuite struct {
	suite.Suite
	reg *prometheus.Registry
	h   http.Handler
}

func (s *ServerSuite) SetupTest() {
	cfg := config.Default()
	cfg.Server.GinMode = "test"
	cfg.Grid = config.GridConfig{Rows: 4, Cols: 6}

	s.reg = prometheus.NewRegistry()
	srv, err := server.New(cfg, server.WithRegistry(s.reg))
	s.Require().NoError(err)
	s.h = srv.Handler()
}

func (s *ServerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.h.ServeHTTP(w, req)
	return w
}

func (s *ServerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *ServerSuite) create(body any) string {
	w := s.do(http.MethodPost, "/v1/sims", body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var out createBody
	s.decode(w, &out)
	_, err := uuid.Parse(out.ID)
	s.Require().NoError(err)
	return out.ID
}

func (s *ServerSuite) TestCreateDefaults() {
	w := s.do(http.MethodPost, "/v1/sims", map[string]any{})
	s.Require().Equal(http.StatusCreated, w.Code)
	var out createBody
	s.decode(w, &out)
	s.Equal(4, out.Snapshot.Rows)
	s.Equal(6, out.Snapshot.Cols)
	s.Equal("idle", out.Snapshot.Phase)
	s.Nil(out.Snapshot.Agent)
}

func (s *ServerSuite) TestCreateRejectsBadInput() {
	w := s.do(http.MethodPost, "/v1/sims", map[string]any{"map": []string{"S.", "..X"}})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/sims", map[string]any{"rows": -2})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/sims", map[string]any{"radius": -1.0})
	s.Equal(http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/sims", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

// TestFullRun places markers, begins, ticks to the goal and checks the final
// state and the 409s that follow.
func (s *ServerSuite) TestFullRun() {
	id := s.create(map[string]any{"rows": 5, "cols": 5, "radius": 10.0})
	base := "/v1/sims/" + id

	w := s.do(http.MethodPost, base+"/begin", nil)
	s.Equal(http.StatusConflict, w.Code, "begin without start and goal")

	s.Equal(http.StatusOK, s.do(http.MethodPost, base+"/place", map[string]any{"row": 0, "col": 0, "role": "start"}).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, base+"/place", map[string]any{"row": 4, "col": 4, "role": "goal"}).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, base+"/place", map[string]any{"row": 2, "col": 2, "role": "barrier"}).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, base+"/clear", map[string]any{"row": 2, "col": 2}).Code)

	w = s.do(http.MethodPost, base+"/begin", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var snap snapshotBody
	s.decode(w, &snap)
	s.Equal("running", snap.Phase)
	s.Require().NotNil(snap.Agent)
	s.Equal(grid.P(0, 0), *snap.Agent)

	s.Equal(http.StatusConflict, s.do(http.MethodPost, base+"/place", map[string]any{"row": 1, "col": 1, "role": "barrier"}).Code)

	w = s.do(http.MethodPost, base+"/tick?n=100", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var ticks tickBody
	s.decode(w, &ticks)
	s.Len(ticks.Reports, 8)
	s.Equal("goal", ticks.Reports[0].Decision)
	s.Equal(grid.P(4, 4), ticks.Reports[7].To)
	s.Equal("goal_reached", ticks.Reports[7].Outcome)
	s.Equal("finished", ticks.Snapshot.Phase)
	s.Equal(8, ticks.Snapshot.Steps)

	s.Equal(http.StatusConflict, s.do(http.MethodPost, base+"/tick", nil).Code)

	w = s.do(http.MethodPost, base+"/reset", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &snap)
	s.Equal("idle", snap.Phase)
	s.Equal([]string{".....", ".....", ".....", ".....", "....."}, snap.Map)
}

func (s *ServerSuite) TestTickSingleAndMap() {
	id := s.create(map[string]any{"map": openMap, "radius": 10.0})
	base := "/v1/sims/" + id
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, base+"/begin", nil).Code)

	w := s.do(http.MethodPost, base+"/tick", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var ticks tickBody
	s.decode(w, &ticks)
	s.Require().Len(ticks.Reports, 1)
	s.True(ticks.Reports[0].Moved)
	s.Equal(grid.P(1, 0), ticks.Reports[0].To)
	s.Equal([]string{"S????", "@????", "*????", "*????", "****G"}, ticks.Snapshot.Lines)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, base+"/tick?n=-3", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, base+"/tick?n=abc", nil).Code)
}

func (s *ServerSuite) TestCellErrors() {
	base := "/v1/sims/" + s.create(map[string]any{"rows": 3, "cols": 3})

	w := s.do(http.MethodPost, base+"/place", map[string]any{"row": 3, "col": 0, "role": "barrier"})
	s.Equal(http.StatusBadRequest, w.Code, "out of bounds")
	w = s.do(http.MethodPost, base+"/place", map[string]any{"row": 0, "col": 0, "role": "lava"})
	s.Equal(http.StatusBadRequest, w.Code, "unknown role")
	w = s.do(http.MethodPost, base+"/place", map[string]any{"col": 0, "role": "start"})
	s.Equal(http.StatusBadRequest, w.Code, "missing row")
	w = s.do(http.MethodPost, base+"/clear", map[string]any{"row": 0, "col": -1})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestUnknownAndDelete() {
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/sims/"+uuid.NewString(), nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/sims/not-a-uuid", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/v1/sims/"+uuid.NewString()+"/tick", nil).Code)

	id := s.create(map[string]any{})
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1/sims/"+id, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/v1/sims/"+id, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/sims/"+id, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/v1/sims/"+id, nil).Code)
}

// TestIndependentSessions runs several simulations concurrently.
func (s *ServerSuite) TestIndependentSessions() {
	const n = 8
	ids := make([]string, n)
	for i := range ids {
		ids[i] = s.create(map[string]any{"map": openMap, "radius": 10.0})
	}

	var wg sync.WaitGroup
	codes := make([]int, n)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			base := "/v1/sims/" + id
			req := httptest.NewRequest(http.MethodPost, base+"/begin", nil)
			w := httptest.NewRecorder()
			s.h.ServeHTTP(w, req)
			for k := 0; k < 8 && w.Code == http.StatusOK; k++ {
				req = httptest.NewRequest(http.MethodPost, base+"/tick", nil)
				w = httptest.NewRecorder()
				s.h.ServeHTTP(w, req)
			}
			codes[i] = w.Code
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		s.Equal(http.StatusOK, codes[i])
		var snap snapshotBody
		s.decode(s.do(http.MethodGet, "/v1/sims/"+id, nil), &snap)
		s.Equal("goal_reached", snap.Outcome, "sim %d", i)
	}
}

func (s *ServerSuite) TestMetricsEndpoint() {
	id := s.create(map[string]any{"map": openMap, "radius": 10.0})
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/v1/sims/"+id+"/begin", nil).Code)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/v1/sims/"+id+"/tick?n=3", nil).Code)

	w := s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `pathsim_ticks_total{decision="goal"} 3`)
	s.Contains(body, "pathsim_sessions_active 1")
	s.Contains(body, fmt.Sprintf(`pathsim_search_calls_total{decision="goal",result="found"} %d`, 3))
}

func (s *ServerSuite) TestHealth() {
	w := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Rows = 0
	_, err := server.New(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
}
