package grid

import "fmt"

// Grid is a fixed rows×cols matrix of cell roles stored row-major.
type Grid struct {
	rows, cols int
	roles      []Role

	start, goal       Pos
	hasStart, hasGoal bool
}

// New returns a rows×cols grid with every cell Empty.
// Returns ErrBadDimensions if rows or cols < 1.
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %d×%d", ErrBadDimensions, rows, cols)
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		roles: make([]Role, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows×cols.
func (g *Grid) Size() int { return len(g.roles) }

// InBounds reports whether p lies within the grid extents.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index maps p to its row-major index. p must be in bounds.
func (g *Grid) Index(p Pos) int { return p.Row*g.cols + p.Col }

// PosAt converts a row-major index back to a position.
func (g *Grid) PosAt(i int) Pos { return Pos{Row: i / g.cols, Col: i % g.cols} }

func (g *Grid) check(p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v in %d×%d grid", ErrOutOfBounds, p, g.rows, g.cols)
	}

	return nil
}

// Role returns the role of the cell at p.
func (g *Grid) Role(p Pos) (Role, error) {
	if err := g.check(p); err != nil {
		return Empty, err
	}

	return g.roles[g.Index(p)], nil
}

// Cell returns the cell at p by value.
func (g *Grid) Cell(p Pos) (Cell, error) {
	r, err := g.Role(p)
	if err != nil {
		return Cell{}, err
	}

	return Cell{Pos: p, Role: r}, nil
}

// IsBarrier reports whether p is in bounds and holds a Barrier.
func (g *Grid) IsBarrier(p Pos) bool {
	return g.InBounds(p) && g.roles[g.Index(p)] == Barrier
}

// Start returns the Start position, if one is set.
func (g *Grid) Start() (Pos, bool) { return g.start, g.hasStart }

// Goal returns the Goal position, if one is set.
func (g *Grid) Goal() (Pos, bool) { return g.goal, g.hasGoal }

// SetRole assigns role to the cell at p.
//
// Assigning Start or Goal relocates that marker: the previous holder, if any,
// becomes Empty. Overwriting the current Start or Goal cell with another role
// drops the marker. SetRole(p, Empty) is equivalent to ClearRole(p).
func (g *Grid) SetRole(p Pos, role Role) error {
	if err := g.check(p); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %d", ErrBadRole, uint8(role))
	}

	g.release(p)
	switch role {
	case Start:
		if g.hasStart {
			g.roles[g.Index(g.start)] = Empty
		}
		g.start, g.hasStart = p, true
	case Goal:
		if g.hasGoal {
			g.roles[g.Index(g.goal)] = Empty
		}
		g.goal, g.hasGoal = p, true
	}
	g.roles[g.Index(p)] = role

	return nil
}

// ClearRole demotes the cell at p (Start, Goal or Barrier) back to Empty.
func (g *Grid) ClearRole(p Pos) error {
	if err := g.check(p); err != nil {
		return err
	}
	g.release(p)
	g.roles[g.Index(p)] = Empty

	return nil
}

// release forgets the Start/Goal marker if p currently holds it.
func (g *Grid) release(p Pos) {
	if g.hasStart && g.start == p {
		g.hasStart = false
	}
	if g.hasGoal && g.goal == p {
		g.hasGoal = false
	}
}

// Neighbors returns the in-bounds, non-Barrier cells adjacent to p in the
// order up, down, left, right.
func (g *Grid) Neighbors(p Pos) ([]Cell, error) {
	if err := g.check(p); err != nil {
		return nil, err
	}

	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		q := Pos{Row: p.Row + d[0], Col: p.Col + d[1]}
		if !g.InBounds(q) {
			continue
		}
		r := g.roles[g.Index(q)]
		if r == Barrier {
			continue
		}
		out = append(out, Cell{Pos: q, Role: r})
	}

	return out, nil
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.roles))
	for i, r := range g.roles {
		out[i] = Cell{Pos: g.PosAt(i), Role: r}
	}

	return out
}

// Count returns how many cells hold role.
func (g *Grid) Count(role Role) int {
	n := 0
	for _, r := range g.roles {
		if r == role {
			n++
		}
	}

	return n
}

// Reset demotes every cell to Empty and forgets Start and Goal.
func (g *Grid) Reset() {
	for i := range g.roles {
		g.roles[i] = Empty
	}
	g.hasStart, g.hasGoal = false, false
	g.start, g.goal = Pos{}, Pos{}
}

// Clone returns an independent deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.roles = make([]Role, len(g.roles))
	copy(c.roles, g.roles)

	return &c
}
