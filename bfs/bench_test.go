package bfs_test

import (
	"testing"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/bfs"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// BenchmarkBFS_Grid floods an empty M×M grid.
func BenchmarkBFS_Grid(b *testing.B) {
	const M = 100
	g, _ := grid.New(M, M)

	b.ReportAllocs()
	b.SetBytes(int64(M * M))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, grid.P(0, 0))
	}
}
