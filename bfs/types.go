package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// Sentinel errors for BFS execution.
var (
	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("bfs: grid is nil")

	// ErrStartBarrier is returned when the start cell is impassable.
	ErrStartBarrier = errors.New("bfs: start cell is a barrier")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a cell. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(p grid.Pos, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// Filter can skip moves by returning false.
	Filter func(from, to grid.Pos) bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no filtering
//   - no-op OnVisit
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnVisit:  func(grid.Pos, int) error { return nil },
		MaxDepth: 0,
		Filter:   func(_, _ grid.Pos) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(p grid.Pos, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilter skips moves when fn returns false.
func WithFilter(fn func(from, to grid.Pos) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Filter = fn
		}
	}
}

// Result holds the outcome of a BFS traversal.
type Result struct {
	// Order lists cells in visit sequence.
	Order []grid.Pos

	g      *grid.Grid
	depth  []int // -1 when unreached
	parent []int // -1 for the start and unreached cells
}

// Reached reports whether p was visited.
func (r *Result) Reached(p grid.Pos) bool {
	_, ok := r.Depth(p)
	return ok
}

// Depth returns the number of moves from the start to p.
func (r *Result) Depth(p grid.Pos) (int, bool) {
	if !r.g.InBounds(p) {
		return 0, false
	}
	d := r.depth[r.g.Index(p)]
	if d < 0 {
		return 0, false
	}

	return d, true
}

// PathTo reconstructs the path from the start cell to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest grid.Pos) ([]grid.Pos, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("bfs: no path to %v", dest)
	}
	// build reversed path
	var path []grid.Pos
	for at := r.g.Index(dest); at >= 0; at = r.parent[at] {
		path = append(path, r.g.PosAt(at))
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
