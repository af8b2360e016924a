package explore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/astar"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/bfs"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/sensor"
)

// tick carries the per-tick view shared by the selection steps.
type tick struct {
	visible []grid.Cell
	reach   *bfs.Result
	report  Report
}

// Tick advances the run by one step. Only valid while Running.
//
// The returned Report describes the decision, the planned route and whether
// the agent moved. A tick that finishes the run (goal reached, exhausted,
// no path or step limit) reports the final phase and outcome.
func (c *Controller) Tick() (Report, error) {
	if c.phase != Running {
		return Report{}, invalid("tick while %s", c.phase)
	}

	t, err := c.observe()
	if err != nil {
		return Report{}, err
	}

	route, err := c.selectRoute(t)
	if err != nil {
		return Report{}, err
	}

	switch {
	case t.report.Decision == DecisionNone:
		c.finish(OutcomeExhausted)
	case len(route) < 2:
		c.log.Warn("no usable route",
			slog.String("decision", t.report.Decision.String()),
			slog.String("position", c.pos.String()),
		)
		c.finish(OutcomeNoPath)
	default:
		c.advance(&t.report, route[1])
	}

	t.report.Step = c.steps
	t.report.Phase = c.phase
	t.report.Outcome = c.outcome
	c.last = t.report
	c.opts.Observer.ObserveTick(t.report)

	return t.report, nil
}

// observe runs the sensor and the reachability flood around the agent.
func (c *Controller) observe() (*tick, error) {
	visible, err := c.sensor.VisibleFrom(c.grid, c.pos)
	if err != nil {
		return nil, fmt.Errorf("explore: sensor: %w", err)
	}
	reach, err := bfs.BFS(c.grid, c.pos)
	if err != nil {
		return nil, fmt.Errorf("explore: reachability: %w", err)
	}

	t := &tick{visible: visible, reach: reach}
	t.report.From = c.pos
	t.report.To = c.pos
	t.report.Visible = make([]grid.Pos, len(visible))
	for i, cell := range visible {
		t.report.Visible[i] = cell.Pos
		if c.isFrontier(cell) {
			t.report.Frontier = append(t.report.Frontier, cell.Pos)
		}
	}

	return t, nil
}

// isFrontier reports whether a visible cell is unexplored and unmarked.
func (c *Controller) isFrontier(cell grid.Cell) bool {
	return cell.Role == grid.Empty && !c.visited[c.grid.Index(cell.Pos)]
}

// selectRoute walks the goal → frontier → backtrack chain and returns the
// route for the first branch that yields one. t.report.Decision stays
// DecisionNone when every branch is exhausted.
func (c *Controller) selectRoute(t *tick) ([]grid.Pos, error) {
	if route, ok, err := c.towardGoal(t); err != nil || ok {
		return route, err
	}
	if route, ok, err := c.towardFrontier(t); err != nil || ok {
		return route, err
	}

	return c.backtrack(t)
}

// towardGoal plans to the Goal once it has been seen from a cell that can
// reach it. The sighting latches for the rest of the run, so a detour that
// takes the Goal out of range does not hand control back to exploration.
func (c *Controller) towardGoal(t *tick) ([]grid.Pos, bool, error) {
	goal, ok := c.grid.Goal()
	if !ok || !t.reach.Reached(goal) {
		return nil, false, nil
	}
	if !c.goalSeen && !sensor.InRange(c.pos, goal, c.sensor.Radius()) {
		return nil, false, nil
	}
	c.goalSeen = true

	return c.planTo(t, DecisionGoal, goal)
}

// towardFrontier keeps heading for the committed frontier cell until the
// agent occupies it. Without a live commitment it commits to the nearest
// visible, unexplored, reachable cell. The visible list is row-major, so a
// strict comparison keeps the first of equally distant candidates.
// Every frontier leg ends with a new explored cell.
func (c *Controller) towardFrontier(t *tick) ([]grid.Pos, bool, error) {
	if c.hasTarget && !c.visited[c.grid.Index(c.target)] && t.reach.Reached(c.target) {
		return c.planTo(t, DecisionFrontier, c.target)
	}
	c.hasTarget = false

	best, bestDist := grid.Pos{}, -1
	for _, cell := range t.visible {
		if !c.isFrontier(cell) || !t.reach.Reached(cell.Pos) {
			continue
		}
		if d := sensor.DistSq(c.pos, cell.Pos); bestDist < 0 || d < bestDist {
			best, bestDist = cell.Pos, d
		}
	}
	if bestDist < 0 {
		return nil, false, nil
	}
	c.target, c.hasTarget = best, true

	return c.planTo(t, DecisionFrontier, best)
}

// backtrack scans the explored set in row-major order for the first cell
// that would reveal an unexplored reachable cell and can be routed to in at
// least one move.
func (c *Controller) backtrack(t *tick) ([]grid.Pos, error) {
	for i, seen := range c.visited {
		if !seen {
			continue
		}
		p := c.grid.PosAt(i)
		if p == c.pos {
			continue
		}
		reveals, err := c.revealsUnexplored(t, p)
		if err != nil {
			return nil, err
		}
		if !reveals {
			continue
		}
		route, ok, err := c.planTo(t, DecisionBacktrack, p)
		if err != nil {
			return nil, err
		}
		if ok && len(route) >= 2 {
			return route, nil
		}
	}
	t.report.Decision = DecisionNone
	t.report.Target = nil
	t.report.Route = nil

	return nil, nil
}

// revealsUnexplored reports whether the sensor at p would see an unexplored
// cell reachable from the agent.
func (c *Controller) revealsUnexplored(t *tick, p grid.Pos) (bool, error) {
	cells, err := c.sensor.VisibleFrom(c.grid, p)
	if err != nil {
		return false, fmt.Errorf("explore: sensor: %w", err)
	}
	for _, cell := range cells {
		if !c.visited[c.grid.Index(cell.Pos)] && t.reach.Reached(cell.Pos) {
			return true, nil
		}
	}

	return false, nil
}

// planTo asks the pathfinder for a route to target and records the attempt.
// An unreachable target reports ok=false without an error.
func (c *Controller) planTo(t *tick, d Decision, target grid.Pos) ([]grid.Pos, bool, error) {
	res, err := astar.FindPath(c.grid, c.pos, target, astar.WithClock(c.opts.Clock.Now))
	c.opts.Observer.ObserveSearch(d, res, err)
	if res != nil {
		t.report.Search.Calls++
		t.report.Search.Expanded += res.Expanded
		t.report.Search.Elapsed += res.Elapsed
	}
	if errors.Is(err, astar.ErrUnreachable) {
		c.log.Debug("target unreachable",
			slog.String("decision", d.String()),
			slog.String("target", target.String()),
			slog.Int("expanded", res.Expanded),
		)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("explore: plan %s to %v: %w", d, target, err)
	}

	t.report.Decision = d
	t.report.Target = &target
	t.report.Route = res.Path

	return res.Path, true, nil
}

// advance moves the agent to next and applies the end-of-run checks.
func (c *Controller) advance(r *Report, next grid.Pos) {
	c.pos = next
	c.visit(next)
	c.steps++
	r.Moved = true
	r.To = next

	c.log.Debug("agent moved",
		slog.String("decision", r.Decision.String()),
		slog.String("from", r.From.String()),
		slog.String("to", next.String()),
		slog.Int("step", c.steps),
	)

	if goal, ok := c.grid.Goal(); ok && next == goal {
		c.finish(OutcomeGoalReached)
		return
	}
	if c.steps >= c.opts.MaxSteps {
		c.finish(OutcomeStepLimit)
	}
}

// Run ticks until the run leaves Running or ctx is done. With a positive
// interval ticks are paced by a time.Ticker; otherwise they run back to back.
func (c *Controller) Run(ctx context.Context, interval time.Duration) error {
	if c.phase != Running {
		return invalid("run while %s", c.phase)
	}

	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}
	for c.phase == Running {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.Tick(); err != nil {
			return err
		}
	}

	return nil
}
