package grid

import (
	"fmt"
	"strings"
)

// Map glyphs understood by Parse and produced by Lines.
const (
	GlyphEmpty   = '.'
	GlyphBarrier = '#'
	GlyphStart   = 'S'
	GlyphGoal    = 'G'
)

// Glyph returns the map character for r.
func (r Role) Glyph() byte {
	switch r {
	case Barrier:
		return GlyphBarrier
	case Start:
		return GlyphStart
	case Goal:
		return GlyphGoal
	default:
		return GlyphEmpty
	}
}

// Parse builds a grid from ASCII rows, one string per grid row.
// Blank lines and surrounding whitespace are ignored so map files may end
// with a newline. Returns ErrEmptyGrid, ErrNonRectangular, ErrBadGlyph or
// ErrDuplicateMarker on malformed input.
func Parse(lines []string) (*Grid, error) {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		rows = append(rows, l)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonRectangular, i, len(row), w)
		}
	}

	g, err := New(len(rows), w)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c := 0; c < w; c++ {
			var role Role
			switch row[c] {
			case GlyphEmpty:
				continue
			case GlyphBarrier:
				role = Barrier
			case GlyphStart:
				if _, ok := g.Start(); ok {
					return nil, fmt.Errorf("%w: second %c at %v", ErrDuplicateMarker, GlyphStart, P(r, c))
				}
				role = Start
			case GlyphGoal:
				if _, ok := g.Goal(); ok {
					return nil, fmt.Errorf("%w: second %c at %v", ErrDuplicateMarker, GlyphGoal, P(r, c))
				}
				role = Goal
			default:
				return nil, fmt.Errorf("%w: %q at %v", ErrBadGlyph, row[c], P(r, c))
			}
			// in bounds by construction
			_ = g.SetRole(P(r, c), role)
		}
	}

	return g, nil
}

// Lines renders the grid in the format accepted by Parse.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			buf[c] = g.roles[r*g.cols+c].Glyph()
		}
		out[r] = string(buf)
	}

	return out
}

// String joins Lines with newlines.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
