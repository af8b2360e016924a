// Package bfs provides breadth-first search over a grid.Grid, returning
// move-count distances, parent links and visit order from a start cell.
//
// What
//
//   - Explore passable cells in non-decreasing distance from a start cell.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: distance (moves) from start, per reached cell
//   - Parent: predecessor in the BFS tree, per reached cell
//   - Hooks: OnVisit may abort the walk with an error.
//   - WithFilter prunes individual moves; WithMaxDepth limits the radius.
//
// Why
//
//   - The exploration controller floods the agent's connected component once
//     per tick so it only ever plans toward cells a route can reach.
//   - Tests use Depth as the ground-truth shortest distance for A*.
//
// Determinism
//
//	Neighbors are generated in the grid's fixed order (up, down, left, right),
//	so the visit sequence is fully reproducible.
//
// Complexity
//
//   - Time:   O(rows×cols), each cell enqueued at most once, ≤4 moves each.
//   - Memory: O(rows×cols) for depth and parent slices.
//
// Errors
//
//   - ErrGridNil:          nil grid pointer.
//   - ErrStartBarrier:     the start cell is a Barrier.
//   - grid.ErrOutOfBounds: start outside the grid (wrapped).
//   - ErrOptionViolation:  invalid option values.
//   - context errors or OnVisit errors are returned as-is (wrapped for OnVisit).
package bfs
