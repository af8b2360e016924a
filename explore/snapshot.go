package explore

import (
	"fmt"
	"time"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// Paint is a rendering hint for one cell. The controller never draws; a
// rendering layer maps Paint to its own visual style.
type Paint uint8

const (
	PaintEmpty Paint = iota
	PaintVisible
	PaintFrontier
	PaintExplored
	PaintRoute
	PaintStart
	PaintGoal
	PaintBarrier
	PaintAgent
)

var paintNames = [...]string{"empty", "visible", "frontier", "explored", "route", "start", "goal", "barrier", "agent"}

// paintGlyphs renders each Paint as one character in Snapshot.Lines.
var paintGlyphs = [...]byte{'.', ',', '?', 'o', '*', 'S', 'G', '#', '@'}

// String returns the lower-case paint name.
func (p Paint) String() string {
	if int(p) < len(paintNames) {
		return paintNames[p]
	}

	return fmt.Sprintf("paint(%d)", uint8(p))
}

// Glyph returns the ASCII character used by Snapshot.Lines.
func (p Paint) Glyph() byte {
	if int(p) < len(paintGlyphs) {
		return paintGlyphs[p]
	}

	return '?'
}

// MarshalText encodes the paint by name.
func (p Paint) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Snapshot is a read-only copy of everything a rendering layer needs.
type Snapshot struct {
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	Map      []string      `json:"map"`
	Phase    Phase         `json:"phase"`
	Outcome  Outcome       `json:"outcome"`
	Decision Decision      `json:"decision"`
	Agent    *grid.Pos     `json:"agent,omitempty"`
	Steps    int           `json:"steps"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Explored []grid.Pos    `json:"explored"`
	Visible  []grid.Pos    `json:"visible,omitempty"`
	Frontier []grid.Pos    `json:"frontier,omitempty"`
	Route    []grid.Pos    `json:"route,omitempty"`
	Lines    []string      `json:"lines"`

	paint []Paint
}

// Snapshot captures the current state and derives per-cell paint hints.
//
// Paint precedence, highest first: agent, barrier, goal, start, route,
// explored, frontier, visible, empty. The route is painted only when the
// last tick planned toward the Goal.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Rows:     c.grid.Rows(),
		Cols:     c.grid.Cols(),
		Map:      c.grid.Lines(),
		Phase:    c.phase,
		Outcome:  c.outcome,
		Decision: c.last.Decision,
		Steps:    c.steps,
		Elapsed:  c.Elapsed(),
		Explored: c.ExploredCells(),
		Visible:  c.last.Visible,
		Frontier: c.last.Frontier,
		Route:    c.last.Route,
	}
	if p, ok := c.Position(); ok {
		s.Agent = &p
	}

	s.paint = make([]Paint, c.grid.Size())
	layer := func(cells []grid.Pos, p Paint) {
		for _, q := range cells {
			s.paint[c.grid.Index(q)] = p
		}
	}
	layer(s.Visible, PaintVisible)
	layer(s.Frontier, PaintFrontier)
	layer(s.Explored, PaintExplored)
	if s.Decision == DecisionGoal {
		layer(s.Route, PaintRoute)
	}
	for i, cell := range c.grid.Cells() {
		switch cell.Role {
		case grid.Start:
			s.paint[i] = PaintStart
		case grid.Goal:
			s.paint[i] = PaintGoal
		case grid.Barrier:
			s.paint[i] = PaintBarrier
		}
	}
	if s.Agent != nil {
		s.paint[c.grid.Index(*s.Agent)] = PaintAgent
	}

	s.Lines = make([]string, s.Rows)
	buf := make([]byte, s.Cols)
	for r := 0; r < s.Rows; r++ {
		for col := 0; col < s.Cols; col++ {
			buf[col] = s.paint[r*s.Cols+col].Glyph()
		}
		s.Lines[r] = string(buf)
	}

	return s
}

// PaintAt returns the paint hint for p, or PaintEmpty when p is out of bounds.
func (s Snapshot) PaintAt(p grid.Pos) Paint {
	if p.Row < 0 || p.Row >= s.Rows || p.Col < 0 || p.Col >= s.Cols {
		return PaintEmpty
	}

	return s.paint[p.Row*s.Cols+p.Col]
}
