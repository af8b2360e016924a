// Package astar provides an A* shortest-path search over a grid.Grid with
// unit edge costs and 4-connected moves.
//
// Overview:
//
//   - FindPath computes one optimal route between two cells. Every call is
//     independent: no state is retained between calls, so the result always
//     reflects the grid's current barrier layout.
//   - The heuristic is the Manhattan distance, which is admissible and
//     consistent for unit-cost 4-connected grids, so the first time the
//     target is popped its cost is optimal.
//
// Determinism:
//
//   - The open set is a binary min-heap keyed by (f, seq) where seq is a
//     strictly increasing counter assigned at push time. Among entries with
//     equal f the earliest pushed is expanded first, which makes the
//     expansion order, and therefore the returned route, reproducible.
//   - Neighbors are generated in the grid's fixed order: up, down, left, right.
//
// Relaxation and lazy decrease-key:
//
//   - g[v] starts at +∞ except g[source] = 0. A neighbor is pushed only when
//     g[u]+1 < g[v]. A cell may therefore sit in the heap several times under
//     different f values; entries whose g is worse than the best known g are
//     skipped when popped and never counted as expansions.
//
// Statistics:
//
//   - Result.Expanded counts distinct cells popped and expanded.
//   - Result.Elapsed is the wall-clock duration of the call.
//     Neither is used for correctness.
//
// Complexity:
//
//   - Time:  O(E log V) with V = rows×cols and E ≤ 4V.
//   - Space: O(V) for g-scores and came-from links, O(E) heap entries worst case.
//
// Errors (sentinel):
//
//   - ErrNilGrid:          a nil *grid.Grid was supplied.
//   - grid.ErrOutOfBounds: source or target lies outside the grid (wrapped).
//   - ErrUnreachable:      no route exists. The Result is still returned with
//     Expanded and Elapsed populated and a nil Path.
//   - ErrExpansionLimit:   WithMaxExpansions cap reached before the target.
//   - ErrOptionViolation:  an invalid option value was supplied.
package astar
