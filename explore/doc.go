// Package explore implements the exploration controller: a small state
// machine that, once per tick, decides what to plan toward, asks the A*
// pathfinder for a route and advances the agent one cell along it.
//
// Phases:
//
//	Idle ──Begin──▶ Running ──(goal reached | exhausted | no path | step limit)──▶ Finished
//	  ▲                                                                              │
//	  └──────────────────────────────── Reset ◀──────────────────────────────────────┘
//
// Target selection, evaluated every tick in this order:
//
//  1. Goal:      the Goal is reachable and has been visible from a cell
//     that could reach it at some point during the run.
//  2. Frontier:  the committed frontier cell while it is still unexplored
//     and reachable; otherwise the nearest (Euclidean) visible,
//     unexplored, reachable cell that is neither Start nor Goal,
//     which becomes the new commitment. Ties go to the first cell
//     in row-major order.
//  3. Backtrack: the first explored cell, in row-major order, from which the
//     sensor would reveal an unexplored reachable cell and toward
//     which a route of at least two cells exists.
//  4. Otherwise the run finishes as Exhausted.
//
// Reachability is a breadth-first flood from the agent computed once per tick.
// A visible Goal or frontier that no route can reach is skipped instead of
// ending the run, so an unreachable target only ever redirects the search.
// Every leg ends in a new explored cell or a new frontier, so no run on a
// finite grid exceeds DefaultMaxSteps.
//
// Only one step is taken per tick so the sensor re-evaluates after every
// move. The explored set holds the cells the agent has physically occupied,
// including the Start cell from Begin onward, and only grows during a run.
//
// Commands that violate the state machine (Place/Clear outside Idle, Begin
// without Start and Goal, Tick outside Running) fail with ErrInvalidCommand;
// out-of-bounds positions fail with grid.ErrOutOfBounds. The Controller is
// not safe for concurrent use.
package explore
