package bfs

import (
	"context"
	"fmt"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// queueItem pairs a cell with its BFS depth.
type queueItem struct {
	pos   grid.Pos
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	grid  *grid.Grid
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g starting from start, applying any
// number of functional Options.
// Returns ErrGridNil, wrapped grid.ErrOutOfBounds or ErrStartBarrier for
// invalid input, ErrOptionViolation for bad options, or any hook/context error.
func BFS(g *grid.Grid, start grid.Pos, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	role, err := g.Role(start)
	if err != nil {
		return nil, fmt.Errorf("bfs: start: %w", err)
	}
	if role == grid.Barrier {
		return nil, fmt.Errorf("%w: %v", ErrStartBarrier, start)
	}

	n := g.Size()
	w := &walker{
		grid:  g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]grid.Pos, 0, n),
			g:      g,
			depth:  make([]int, n),
			parent: make([]int, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.depth[i] = -1
		w.res.parent[i] = -1
	}

	// Seed queue with start cell (no parent)
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

// enqueue marks p reached at depth d, records its parent and queues it.
func (w *walker) enqueue(p grid.Pos, d, parent int) {
	i := w.grid.Index(p)
	w.res.depth[i] = d
	w.res.parent[i] = parent
	w.queue = append(w.queue, queueItem{pos: p, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.pos)
		if err := w.opts.OnVisit(item.pos, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %v: %w", item.pos, err)
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth, and enqueues each unseen
// passable neighbor.
func (w *walker) enqueueNeighbors(item queueItem) error {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return nil
	}
	neighbors, err := w.grid.Neighbors(item.pos)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %v: %w", item.pos, err)
	}
	from := w.grid.Index(item.pos)
	for _, nb := range neighbors {
		if !w.opts.Filter(item.pos, nb.Pos) {
			continue
		}
		// first time seen?
		if w.res.depth[w.grid.Index(nb.Pos)] < 0 {
			w.enqueue(nb.Pos, nextDepth, from)
		}
	}

	return nil
}
