package sensor

import (
	"errors"
	"fmt"
	"math"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// DefaultRadius is the sensor range used when none is configured.
const DefaultRadius = 6.0

// Sentinel errors for sensor construction and queries.
var (
	// ErrBadRadius indicates a negative, NaN or infinite radius.
	ErrBadRadius = errors.New("sensor: radius must be a finite non-negative number")
	// ErrNilGrid indicates a nil *grid.Grid.
	ErrNilGrid = errors.New("sensor: grid is nil")
)

// Sensor is a fixed-radius visibility model.
type Sensor struct {
	radius float64
}

// New returns a Sensor with the given radius.
func New(radius float64) (*Sensor, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}

	return &Sensor{radius: radius}, nil
}

// Radius returns the configured range.
func (s *Sensor) Radius() float64 { return s.radius }

// VisibleFrom returns the cells visible from center on g.
func (s *Sensor) VisibleFrom(g *grid.Grid, center grid.Pos) ([]grid.Cell, error) {
	return VisibleFrom(center, g, s.radius)
}

// Sees reports whether target is visible from center on g.
func (s *Sensor) Sees(g *grid.Grid, center, target grid.Pos) bool {
	return g.InBounds(target) && !g.IsBarrier(target) && InRange(center, target, s.radius)
}

func checkRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: %v", ErrBadRadius, radius)
	}

	return nil
}

// InRange reports whether a and b are within radius of each other.
// The test is symmetric in a and b.
func InRange(a, b grid.Pos, radius float64) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col

	return float64(dr*dr+dc*dc) <= radius*radius
}

// DistSq returns the squared Euclidean distance between a and b.
func DistSq(a, b grid.Pos) int {
	dr, dc := a.Row-b.Row, a.Col-b.Col

	return dr*dr + dc*dc
}

// VisibleFrom returns every non-barrier cell of g within radius of center,
// in row-major order. Only the bounding box of the radius is scanned.
func VisibleFrom(center grid.Pos, g *grid.Grid, radius float64) ([]grid.Cell, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	if !g.InBounds(center) {
		return nil, fmt.Errorf("sensor: center %v: %w", center, grid.ErrOutOfBounds)
	}

	reach := g.Rows() + g.Cols()
	if radius < float64(reach) {
		reach = int(radius)
	}
	r0, r1 := max(0, center.Row-reach), min(g.Rows()-1, center.Row+reach)
	c0, c1 := max(0, center.Col-reach), min(g.Cols()-1, center.Col+reach)

	var out []grid.Cell
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			p := grid.Pos{Row: r, Col: c}
			if !InRange(center, p, radius) {
				continue
			}
			role, err := g.Role(p)
			if err != nil {
				return nil, err
			}
			if role == grid.Barrier {
				continue
			}
			out = append(out, grid.Cell{Pos: p, Role: role})
		}
	}

	return out, nil
}
