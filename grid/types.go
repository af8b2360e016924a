package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrBadDimensions indicates rows or cols smaller than one.
	ErrBadDimensions = errors.New("grid: rows and cols must be at least 1")
	// ErrOutOfBounds indicates a position outside the grid extents.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
	// ErrBadRole indicates a Role value outside the known set.
	ErrBadRole = errors.New("grid: unknown role")
	// ErrEmptyGrid indicates a map with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: map must have at least one row and one column")
	// ErrNonRectangular indicates map rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all map rows must have the same length")
	// ErrBadGlyph indicates a map character that is not one of . # S G.
	ErrBadGlyph = errors.New("grid: unknown map glyph")
	// ErrDuplicateMarker indicates a map with more than one S or more than one G.
	ErrDuplicateMarker = errors.New("grid: map has more than one start or goal")
)

// Role is the tagged variant carried by every cell.
type Role uint8

const (
	// Empty is a traversable cell with no marker.
	Empty Role = iota
	// Barrier is impassable; it never appears in neighbor lists or routes.
	Barrier
	// Start is where the agent begins a run.
	Start
	// Goal is the destination the agent is trying to reach.
	Goal
)

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case Empty:
		return "empty"
	case Barrier:
		return "barrier"
	case Start:
		return "start"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool { return r <= Goal }

// ParseRole maps a role name (as produced by String) back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "empty":
		return Empty, nil
	case "barrier":
		return Barrier, nil
	case "start":
		return Start, nil
	case "goal":
		return Goal, nil
	}

	return Empty, fmt.Errorf("%w: %q", ErrBadRole, s)
}

// Pos is a cell coordinate and the identity of a cell.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// P is shorthand for Pos{Row: row, Col: col}.
func P(row, col int) Pos { return Pos{Row: row, Col: col} }

// String formats the position as "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is a read-only view of one grid location.
type Cell struct {
	Pos  Pos
	Role Role
}

// Passable reports whether the cell can be entered.
func (c Cell) Passable() bool { return c.Role != Barrier }

// neighborOffsets lists the 4-connected moves in the fixed order up, down, left, right.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
