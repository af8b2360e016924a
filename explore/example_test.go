package explore_test

import (
	"fmt"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

// ExampleController explores a small map, backs out of a dead end once the
// goal is in view, and walks to it.
func ExampleController() {
	g, _ := grid.Parse([]string{
		"S.#",
		"...",
		"#.G",
	})
	c, _ := explore.New(g, explore.WithRadius(1))
	_ = c.Begin()
	for c.Phase() == explore.Running {
		r, _ := c.Tick()
		fmt.Println(r.Decision, r.To)
	}
	fmt.Println(c.Outcome(), c.Steps())
	// Output:
	// frontier (0,1)
	// frontier (1,1)
	// frontier (1,0)
	// backtrack (1,1)
	// frontier (1,2)
	// goal (2,2)
	// goal_reached 6
}
