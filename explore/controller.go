package explore

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/sensor"
)

// Controller owns one simulation: the grid, the agent and the run state.
// Independent simulations use independent Controllers.
type Controller struct {
	grid   *grid.Grid
	sensor *sensor.Sensor
	opts   Options
	log    *slog.Logger

	phase   Phase
	outcome Outcome

	pos      grid.Pos
	visited  []bool // explored set, by row-major index
	explored int
	steps    int

	// target is the committed frontier cell, held until occupied.
	target    grid.Pos
	hasTarget bool
	// goalSeen latches once the goal has been in view and reachable.
	goalSeen bool

	startedAt time.Time
	elapsed   time.Duration // frozen on finish

	last Report
}

// New returns an Idle controller that takes ownership of g.
// Returns ErrNilGrid for a nil grid and ErrOptionViolation for bad options.
func New(g *grid.Grid, opts ...Option) (*Controller, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	s, err := sensor.New(cfg.Radius)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionViolation, err)
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps(g.Size())
	}

	return &Controller{
		grid:    g,
		sensor:  s,
		opts:    cfg,
		log:     cfg.Logger,
		visited: make([]bool, g.Size()),
	}, nil
}

// NewSized is New with a fresh rows×cols grid.
func NewSized(rows, cols int, opts ...Option) (*Controller, error) {
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}

	return New(g, opts...)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCommand, fmt.Sprintf(format, args...))
}

// Place assigns role to the cell at p. Only valid while Idle.
func (c *Controller) Place(p grid.Pos, role grid.Role) error {
	if c.phase != Idle {
		return invalid("place while %s", c.phase)
	}

	return c.grid.SetRole(p, role)
}

// Clear demotes the cell at p to Empty. Only valid while Idle.
func (c *Controller) Clear(p grid.Pos) error {
	if c.phase != Idle {
		return invalid("clear while %s", c.phase)
	}

	return c.grid.ClearRole(p)
}

// Begin starts a run from the Start cell. Requires Idle with both Start and
// Goal placed.
func (c *Controller) Begin() error {
	if c.phase != Idle {
		return invalid("begin while %s", c.phase)
	}
	start, ok := c.grid.Start()
	if !ok {
		return invalid("begin without a start cell")
	}
	goal, ok := c.grid.Goal()
	if !ok {
		return invalid("begin without a goal cell")
	}

	c.clearRun()
	c.phase = Running
	c.pos = start
	c.visit(start)
	c.startedAt = c.opts.Clock.Now()

	c.log.Info("exploration started",
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
		slog.Float64("radius", c.sensor.Radius()),
		slog.Int("max_steps", c.opts.MaxSteps),
	)

	return nil
}

// Reset returns to Idle with a blank grid and no run state. Calling it
// repeatedly is equivalent to calling it once.
func (c *Controller) Reset() {
	if c.phase != Idle {
		c.log.Info("exploration reset", slog.String("phase", c.phase.String()))
	}
	c.grid.Reset()
	c.clearRun()
	c.phase = Idle
}

// clearRun discards agent, explored set, counters and timing.
func (c *Controller) clearRun() {
	for i := range c.visited {
		c.visited[i] = false
	}
	c.explored = 0
	c.steps = 0
	c.pos = grid.Pos{}
	c.outcome = OutcomeNone
	c.startedAt = time.Time{}
	c.elapsed = 0
	c.hasTarget = false
	c.goalSeen = false
	c.last = Report{}
}

// visit adds p to the explored set.
func (c *Controller) visit(p grid.Pos) {
	i := c.grid.Index(p)
	if !c.visited[i] {
		c.visited[i] = true
		c.explored++
	}
}

// finish freezes the run with outcome o.
func (c *Controller) finish(o Outcome) {
	c.phase = Finished
	c.outcome = o
	c.elapsed = c.opts.Clock.Now().Sub(c.startedAt)
	c.opts.Observer.ObserveFinish(o, c.steps, c.elapsed)

	c.log.Info("exploration finished",
		slog.String("outcome", o.String()),
		slog.Int("steps", c.steps),
		slog.Int("explored", c.explored),
		slog.Duration("elapsed", c.elapsed),
		slog.String("position", c.pos.String()),
	)
}

// Grid returns a copy of the current grid.
func (c *Controller) Grid() *grid.Grid { return c.grid.Clone() }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Outcome returns why the last run finished, or OutcomeNone.
func (c *Controller) Outcome() Outcome { return c.outcome }

// Steps returns the number of moves taken in the current run.
func (c *Controller) Steps() int { return c.steps }

// Radius returns the sensor range.
func (c *Controller) Radius() float64 { return c.sensor.Radius() }

// Position returns the agent's cell. ok is false while Idle.
func (c *Controller) Position() (p grid.Pos, ok bool) {
	if c.phase == Idle {
		return grid.Pos{}, false
	}

	return c.pos, true
}

// Explored reports whether the agent has occupied p during the current run.
func (c *Controller) Explored(p grid.Pos) bool {
	return c.grid.InBounds(p) && c.visited[c.grid.Index(p)]
}

// ExploredCount returns the size of the explored set.
func (c *Controller) ExploredCount() int { return c.explored }

// ExploredCells returns the explored set in row-major order.
func (c *Controller) ExploredCells() []grid.Pos {
	out := make([]grid.Pos, 0, c.explored)
	for i, ok := range c.visited {
		if ok {
			out = append(out, c.grid.PosAt(i))
		}
	}

	return out
}

// Elapsed returns the running time, frozen once the run finishes and zero
// while Idle.
func (c *Controller) Elapsed() time.Duration {
	switch c.phase {
	case Running:
		return c.opts.Clock.Now().Sub(c.startedAt)
	case Finished:
		return c.elapsed
	default:
		return 0
	}
}

// LastReport returns the report of the most recent Tick.
func (c *Controller) LastReport() Report { return c.last }
