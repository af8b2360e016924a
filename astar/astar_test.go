package astar_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/astar"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/bfs"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// AStarSuite exercises FindPath on hand-built maps.
type AStarSuite struct {
	suite.Suite
}

func mustParse(t require.TestingT, lines ...string) *grid.Grid {
	g, err := grid.Parse(lines)
	require.NoError(t, err)
	return g
}

func mustStartGoal(t require.TestingT, g *grid.Grid) (grid.Pos, grid.Pos) {
	s, ok := g.Start()
	require.True(t, ok, "map needs S")
	d, ok := g.Goal()
	require.True(t, ok, "map needs G")
	return s, d
}

// TestValidation covers nil grids, bad endpoints and bad options.
func (s *AStarSuite) TestValidation() {
	_, err := astar.FindPath(nil, grid.P(0, 0), grid.P(0, 0))
	require.ErrorIs(s.T(), err, astar.ErrNilGrid)

	g, _ := grid.New(2, 2)
	_, err = astar.FindPath(g, grid.P(-1, 0), grid.P(0, 0))
	require.ErrorIs(s.T(), err, grid.ErrOutOfBounds)
	_, err = astar.FindPath(g, grid.P(0, 0), grid.P(2, 2))
	require.ErrorIs(s.T(), err, grid.ErrOutOfBounds)

	_, err = astar.FindPath(g, grid.P(0, 0), grid.P(1, 1), astar.WithMaxExpansions(-1))
	require.ErrorIs(s.T(), err, astar.ErrOptionViolation)
}

// TestSameCell returns the single-cell route.
func (s *AStarSuite) TestSameCell() {
	g, _ := grid.New(5, 5)
	res, err := astar.FindPath(g, grid.P(2, 2), grid.P(2, 2))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []grid.Pos{grid.P(2, 2)}, res.Path)
	require.Equal(s.T(), 0, res.Cost)
	require.Equal(s.T(), 1, res.Expanded)
	_, ok := res.Next()
	require.False(s.T(), ok, "a single-cell route has no next step")
}

// TestOpenGridIsManhattanOptimal checks r+c+1 cells from the corner on an empty grid.
func (s *AStarSuite) TestOpenGridIsManhattanOptimal() {
	g, _ := grid.New(6, 7)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			res, err := astar.FindPath(g, grid.P(0, 0), grid.P(r, c))
			require.NoError(s.T(), err)
			require.Len(s.T(), res.Path, r+c+1, "route to (%d,%d)", r, c)
			require.Equal(s.T(), len(res.Path)-1, res.Cost)
		}
	}
}

// TestDeterministicRoute pins the route chosen by insertion-order tie-breaking.
func (s *AStarSuite) TestDeterministicRoute() {
	g, _ := grid.New(5, 5)
	res, err := astar.FindPath(g, grid.P(0, 0), grid.P(4, 4))
	require.NoError(s.T(), err)
	want := []grid.Pos{
		grid.P(0, 0), grid.P(1, 0), grid.P(2, 0), grid.P(3, 0), grid.P(4, 0),
		grid.P(4, 1), grid.P(4, 2), grid.P(4, 3), grid.P(4, 4),
	}
	require.Equal(s.T(), want, res.Path)
	require.Equal(s.T(), 8, res.Cost)
	require.Equal(s.T(), 25, res.Expanded)
}

// TestExpansionOrder verifies equal-f entries expand in insertion order.
func (s *AStarSuite) TestExpansionOrder() {
	g, _ := grid.New(3, 3)
	var order []grid.Pos
	_, err := astar.FindPath(g, grid.P(0, 0), grid.P(2, 2),
		astar.WithOnExpand(func(p grid.Pos, _, f int) {
			require.Equal(s.T(), 4, f, "every cell on a 3×3 open grid has f=4 towards the corner")
			order = append(order, p)
		}),
	)
	require.NoError(s.T(), err)
	want := []grid.Pos{
		grid.P(0, 0), grid.P(1, 0), grid.P(0, 1), grid.P(2, 0), grid.P(1, 1),
		grid.P(0, 2), grid.P(2, 1), grid.P(1, 2), grid.P(2, 2),
	}
	require.Equal(s.T(), want, order)
}

// TestDetour follows a corridor around two walls.
func (s *AStarSuite) TestDetour() {
	g := mustParse(s.T(),
		"S.....",
		"####..",
		"......",
		".#####",
		".....G",
	)
	src, dst := mustStartGoal(s.T(), g)
	res, err := astar.FindPath(g, src, dst)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 17, res.Cost)
	require.Equal(s.T(), 21, res.Expanded)
	require.Equal(s.T(), grid.P(0, 1), res.Path[1])
	for _, p := range res.Path {
		require.False(s.T(), g.IsBarrier(p), "route crosses barrier at %v", p)
	}
}

// TestUnreachable reports the expansion count bounded by the reachable component.
func (s *AStarSuite) TestUnreachable() {
	g := mustParse(s.T(),
		".....",
		".###.",
		".#G#.",
		".###.",
		".....",
	)
	res, err := astar.FindPath(g, grid.P(0, 0), grid.P(2, 2))
	require.ErrorIs(s.T(), err, astar.ErrUnreachable)
	require.NotNil(s.T(), res)
	require.Nil(s.T(), res.Path)
	require.False(s.T(), res.Found())
	require.Equal(s.T(), 16, res.Expanded)
}

// TestBarrierTarget never routes onto a barrier.
func (s *AStarSuite) TestBarrierTarget() {
	g := mustParse(s.T(), "..#")
	_, err := astar.FindPath(g, grid.P(0, 0), grid.P(0, 2))
	require.True(s.T(), errors.Is(err, astar.ErrUnreachable))
}

// TestMaxExpansions stops the search early.
func (s *AStarSuite) TestMaxExpansions() {
	g, _ := grid.New(5, 5)
	res, err := astar.FindPath(g, grid.P(0, 0), grid.P(4, 4), astar.WithMaxExpansions(3))
	require.ErrorIs(s.T(), err, astar.ErrExpansionLimit)
	require.Equal(s.T(), 3, res.Expanded)
	require.Nil(s.T(), res.Path)
}

// TestElapsedUsesClock measures with the injected clock.
func (s *AStarSuite) TestElapsedUsesClock() {
	g, _ := grid.New(2, 2)
	base := time.Unix(0, 0)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
	res, err := astar.FindPath(g, grid.P(0, 0), grid.P(1, 1), astar.WithClock(clock))
	require.NoError(s.T(), err)
	require.Equal(s.T(), time.Millisecond, res.Elapsed)
}

func TestAStarSuite(t *testing.T) {
	suite.Run(t, new(AStarSuite))
}

// TestCostMatchesBFS cross-checks optimality against breadth-first depths on
// random obstacle fields.
func TestCostMatchesBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		g, _ := grid.New(12, 12)
		for i := 0; i < g.Size(); i++ {
			if rng.Float64() < 0.3 {
				_ = g.SetRole(g.PosAt(i), grid.Barrier)
			}
		}
		src := grid.P(0, 0)
		_ = g.ClearRole(src)

		tree, err := bfs.BFS(g, src)
		require.NoError(t, err)
		for i := 0; i < g.Size(); i++ {
			dst := g.PosAt(i)
			res, err := astar.FindPath(g, src, dst)
			depth, reached := tree.Depth(dst)
			if !reached {
				require.ErrorIs(t, err, astar.ErrUnreachable, "trial %d dst %v", trial, dst)
				require.LessOrEqual(t, res.Expanded, len(tree.Order))
				continue
			}
			require.NoError(t, err, "trial %d dst %v", trial, dst)
			require.Equal(t, depth, res.Cost, "trial %d dst %v", trial, dst)
			require.Equal(t, len(res.Path)-1, res.Cost)
		}
	}
}
