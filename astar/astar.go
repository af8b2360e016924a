package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// FindPath runs A* from src to dst on g.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. src and dst must be in bounds (wrapped grid.ErrOutOfBounds).
//
// Returns:
//
//   - (*Result, nil) with Path[0] == src and Path[len-1] == dst on success.
//     If src == dst the path is the single cell [src].
//   - (*Result, ErrUnreachable) when no route exists; Path is nil while
//     Expanded and Elapsed are populated.
//   - (*Result, ErrExpansionLimit) when WithMaxExpansions stopped the search.
func FindPath(g *grid.Grid, src, dst grid.Pos, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	if !g.InBounds(src) {
		return nil, fmt.Errorf("astar: source %v: %w", src, grid.ErrOutOfBounds)
	}
	if !g.InBounds(dst) {
		return nil, fmt.Errorf("astar: target %v: %w", dst, grid.ErrOutOfBounds)
	}

	r := newRunner(g, src, dst, cfg)
	t0 := cfg.Clock()
	err := r.process()
	res := &Result{Expanded: r.expandedCount}
	if err == nil {
		res.Path = r.reconstruct()
		res.Cost = r.g[g.Index(dst)]
	}
	res.Elapsed = cfg.Clock().Sub(t0)

	return res, err
}

// runner holds the mutable state for a single A* execution.
type runner struct {
	grid     *grid.Grid
	src, dst grid.Pos
	opts     Options

	g        []int  // best known cost from src, by row-major index
	cameFrom []int  // predecessor index on the best route, -1 if none
	expanded []bool // cells already popped and expanded

	expandedCount int
	seq           uint64 // insertion counter for tie-breaking
	pq            entryPQ
}

func newRunner(g *grid.Grid, src, dst grid.Pos, opts Options) *runner {
	n := g.Size()
	r := &runner{
		grid:     g,
		src:      src,
		dst:      dst,
		opts:     opts,
		g:        make([]int, n),
		cameFrom: make([]int, n),
		expanded: make([]bool, n),
		pq:       make(entryPQ, 0, n),
	}
	for i := range r.g {
		r.g[i] = math.MaxInt
		r.cameFrom[i] = -1
	}
	r.g[g.Index(src)] = 0
	heap.Init(&r.pq)
	r.push(src, 0)

	return r
}

// push inserts p with cost gp, stamping it with the next sequence number.
func (r *runner) push(p grid.Pos, gp int) {
	heap.Push(&r.pq, &entry{
		pos: p,
		g:   gp,
		f:   gp + Manhattan(p, r.dst),
		seq: r.seq,
	})
	r.seq++
}

// process pops entries in (f, seq) order until the target is popped or the
// heap runs dry.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		e := heap.Pop(&r.pq).(*entry)
		u := r.grid.Index(e.pos)

		// Stale duplicate from before a cheaper route was found.
		if e.g > r.g[u] || r.expanded[u] {
			continue
		}
		if r.opts.MaxExpansions > 0 && r.expandedCount >= r.opts.MaxExpansions {
			return fmt.Errorf("%w: %d expansions", ErrExpansionLimit, r.expandedCount)
		}
		r.expanded[u] = true
		r.expandedCount++
		r.opts.OnExpand(e.pos, e.g, e.f)

		if e.pos == r.dst {
			return nil
		}
		if err := r.relax(e.pos, u); err != nil {
			return err
		}
	}

	return ErrUnreachable
}

// relax improves the g-score of every passable neighbor of p reachable for
// less than its current best, recording p as its predecessor.
func (r *runner) relax(p grid.Pos, u int) error {
	neighbors, err := r.grid.Neighbors(p)
	if err != nil {
		return fmt.Errorf("astar: neighbors of %v: %w", p, err)
	}
	next := r.g[u] + 1
	for _, nb := range neighbors {
		v := r.grid.Index(nb.Pos)
		if next >= r.g[v] {
			continue
		}
		r.g[v] = next
		r.cameFrom[v] = u
		r.push(nb.Pos, next)
	}

	return nil
}

// reconstruct follows came-from links back from dst and reverses them.
func (r *runner) reconstruct() []grid.Pos {
	var path []grid.Pos
	for at := r.grid.Index(r.dst); at >= 0; at = r.cameFrom[at] {
		path = append(path, r.grid.PosAt(at))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// entry is one heap record. A cell may appear in several entries.
type entry struct {
	pos  grid.Pos
	g, f int
	seq  uint64
}

// entryPQ is a min-heap ordered by f, then by insertion sequence.
type entryPQ []*entry

// Len returns the number of entries in the heap.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders by f and breaks ties by earliest insertion.
func (pq entryPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two entries.
func (pq entryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; called by heap.Push.
func (pq *entryPQ) Push(x interface{}) { *pq = append(*pq, x.(*entry)) }

// Pop removes the last element; called by heap.Pop.
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
