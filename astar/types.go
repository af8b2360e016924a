package astar

import (
	"errors"
	"fmt"
	"time"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// Sentinel errors returned by FindPath.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed to FindPath.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrUnreachable indicates that the open set was exhausted without
	// popping the target. It is not fatal; callers pick another target.
	ErrUnreachable = errors.New("astar: target unreachable")

	// ErrExpansionLimit indicates the search stopped at the expansion cap.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Result is the outcome of a single FindPath call. It is ephemeral: the
// controller reads it once and discards it.
type Result struct {
	// Path lists the cells from source to target inclusive, or nil when the
	// target was not reached.
	Path []grid.Pos
	// Cost is the number of moves along Path (len(Path)-1), equal to g[target].
	Cost int
	// Expanded is the number of distinct cells popped and expanded.
	Expanded int
	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}

// Found reports whether a route was produced.
func (r *Result) Found() bool { return r != nil && len(r.Path) > 0 }

// Next returns the second cell of the route, the one step the agent takes.
// ok is false when the route has fewer than two cells.
func (r *Result) Next() (p grid.Pos, ok bool) {
	if r == nil || len(r.Path) < 2 {
		return grid.Pos{}, false
	}

	return r.Path[1], true
}

// Options configures FindPath.
type Options struct {
	// Clock supplies timestamps for Elapsed. Defaults to time.Now.
	Clock func() time.Time
	// OnExpand is called for every expanded cell with its g and f scores.
	OnExpand func(p grid.Pos, g, f int)
	// MaxExpansions, if > 0, aborts the search after that many expansions.
	MaxExpansions int

	err error
}

// Option represents a functional option for configuring FindPath.
type Option func(*Options)

// DefaultOptions returns Options with the wall clock, a no-op OnExpand hook
// and no expansion cap.
func DefaultOptions() Options {
	return Options{
		Clock:         time.Now,
		OnExpand:      func(grid.Pos, int, int) {},
		MaxExpansions: 0,
	}
}

// WithClock overrides the time source used to measure Elapsed.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithOnExpand registers a hook invoked once per expanded cell.
func WithOnExpand(fn func(p grid.Pos, g, f int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithMaxExpansions caps the number of expanded cells.
//
//	n > 0:  stop with ErrExpansionLimit after n expansions
//	n == 0: no cap
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|.
func Manhattan(a, b grid.Pos) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
