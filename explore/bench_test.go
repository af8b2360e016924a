package explore_test

import (
	"math/rand"
	"testing"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

func benchGrid(b *testing.B, n int, density float64) *grid.Grid {
	b.Helper()
	rng := rand.New(rand.NewSource(7))
	g, err := grid.New(n, n)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < g.Size(); i++ {
		if rng.Float64() < density {
			_ = g.SetRole(g.PosAt(i), grid.Barrier)
		}
	}
	_ = g.SetRole(grid.P(0, 0), grid.Start)
	_ = g.SetRole(grid.P(n-1, n-1), grid.Goal)

	return g
}

// BenchmarkRun30 measures one full exploration of a 30×30 map with the
// default sensor radius.
func BenchmarkRun30(b *testing.B) {
	base := benchGrid(b, 30, 0.2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := explore.New(base.Clone())
		if err != nil {
			b.Fatal(err)
		}
		if err = c.Begin(); err != nil {
			b.Fatal(err)
		}
		for c.Phase() == explore.Running {
			if _, err = c.Tick(); err != nil {
				b.Fatal(err)
			}
		}
	}
}
