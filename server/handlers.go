package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, explore.ErrInvalidCommand):
		return http.StatusConflict
	case errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, grid.ErrBadRole),
		errors.Is(err, grid.ErrBadDimensions),
		errors.Is(err, grid.ErrEmptyGrid),
		errors.Is(err, grid.ErrNonRectangular),
		errors.Is(err, grid.ErrBadGlyph),
		errors.Is(err, grid.ErrDuplicateMarker),
		errors.Is(err, explore.ErrOptionViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func badRequest(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// sessionHandler runs with the session's lock held.
type sessionHandler func(ctx *gin.Context, c *explore.Controller)

// withSession resolves :id and serializes the handler on the session lock.
// Malformed ids are reported as unknown.
func (s *Server) withSession(h sessionHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			fail(ctx, ErrNotFound)
			return
		}
		sess, err := s.sims.get(id)
		if err != nil {
			fail(ctx, err)
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h(ctx, sess.c)
	}
}

func (s *Server) create(ctx *gin.Context) {
	var req CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	var (
		g   *grid.Grid
		err error
	)
	if len(req.Map) > 0 {
		g, err = grid.Parse(req.Map)
	} else {
		rows, cols := req.Rows, req.Cols
		if rows == 0 {
			rows = s.cfg.Grid.Rows
		}
		if cols == 0 {
			cols = s.cfg.Grid.Cols
		}
		g, err = grid.New(rows, cols)
	}
	if err != nil {
		fail(ctx, err)
		return
	}

	radius := s.cfg.Sensor.Radius
	if req.Radius != nil {
		radius = *req.Radius
	}
	maxSteps := s.cfg.Run.MaxSteps
	if req.MaxSteps > 0 {
		maxSteps = req.MaxSteps
	}

	id := uuid.New()
	c, err := explore.New(g,
		explore.WithRadius(radius),
		explore.WithMaxSteps(maxSteps),
		explore.WithClock(s.opts.Clock),
		explore.WithLogger(s.log.With(slog.String("sim", id.String()))),
		explore.WithObserver(s.metrics),
	)
	if err != nil {
		fail(ctx, err)
		return
	}
	s.sims.put(id, c)
	s.metrics.SessionOpened()
	s.log.Info("simulation created",
		slog.String("id", id.String()),
		slog.Int("rows", g.Rows()),
		slog.Int("cols", g.Cols()),
		slog.Float64("radius", radius),
	)

	ctx.JSON(http.StatusCreated, CreateResponse{ID: id.String(), Snapshot: c.Snapshot()})
}

func (s *Server) snapshot(ctx *gin.Context, c *explore.Controller) {
	ctx.JSON(http.StatusOK, c.Snapshot())
}

func (s *Server) place(ctx *gin.Context, c *explore.Controller) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	role, err := grid.ParseRole(req.Role)
	if err != nil {
		fail(ctx, err)
		return
	}
	if err = c.Place(grid.P(*req.Row, *req.Col), role); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.Snapshot())
}

func (s *Server) clear(ctx *gin.Context, c *explore.Controller) {
	var req CellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.Clear(grid.P(*req.Row, *req.Col)); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.Snapshot())
}

func (s *Server) begin(ctx *gin.Context, c *explore.Controller) {
	if err := c.Begin(); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.Snapshot())
}

func (s *Server) reset(ctx *gin.Context, c *explore.Controller) {
	c.Reset()
	ctx.JSON(http.StatusOK, c.Snapshot())
}

// tick performs up to n ticks. The first tick must be valid; later ones stop
// silently once the run has finished.
func (s *Server) tick(ctx *gin.Context, c *explore.Controller) {
	q := TickQuery{N: 1}
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	if q.N == 0 {
		q.N = 1
	}

	resp := TickResponse{Reports: make([]explore.Report, 0, min(q.N, 64))}
	for i := 0; i < q.N; i++ {
		if i > 0 && c.Phase() != explore.Running {
			break
		}
		r, err := c.Tick()
		if err != nil {
			fail(ctx, err)
			return
		}
		resp.Reports = append(resp.Reports, r)
	}
	resp.Snapshot = c.Snapshot()
	ctx.JSON(http.StatusOK, resp)
}

func (s *Server) remove(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		fail(ctx, ErrNotFound)
		return
	}
	if err = s.sims.remove(id); err != nil {
		fail(ctx, err)
		return
	}
	s.metrics.SessionClosed()
	s.log.Info("simulation deleted", slog.String("id", id.String()))
	ctx.Status(http.StatusNoContent)
}
