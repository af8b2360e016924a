// Package grid models the fixed-size world the planner explores: a rows×cols
// matrix of cells, each carrying one Role (Empty, Barrier, Start or Goal).
//
// What:
//
//   - Grid owns every Cell; callers read cells by value and mutate them only
//     through SetRole / ClearRole.
//   - Pos{Row, Col} is the identity of a cell. Two cells with equal coordinates
//     are the same cell.
//   - Neighbors returns the up/down/left/right cells that are in bounds and not
//     Barrier. It is computed on demand, so it always reflects the current
//     barrier layout and needs no invalidation.
//   - Parse / Lines convert to and from a small ASCII map format used by the
//     CLI and by tests.
//
// Invariants:
//
//   - At most one cell holds Start and at most one holds Goal. Assigning Start
//     (or Goal) to a new cell demotes the previous holder to Empty.
//   - A cell holds exactly one role, so a Barrier can never also be Start/Goal.
//
// Complexity:
//
//   - SetRole, ClearRole, Role, Neighbors: O(1).
//   - Cells, Lines, Reset, Clone:          O(rows×cols).
//
// Errors:
//
//   - ErrBadDimensions: rows or cols < 1.
//   - ErrOutOfBounds:   a position outside the grid extents (programming error).
//   - ErrBadRole:       an unknown Role value.
//   - ErrEmptyGrid, ErrNonRectangular, ErrBadGlyph, ErrDuplicateMarker: Parse failures.
//
// Grid is not safe for concurrent mutation; the exploration controller owns it
// for the duration of a run.
package grid
