package sensor_test

import (
	"fmt"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/sensor"
)

// ExampleVisibleFrom lists what a radius-1 sensor sees next to a barrier.
func ExampleVisibleFrom() {
	g, _ := grid.Parse([]string{
		"...",
		".#.",
		"...",
	})
	cells, _ := sensor.VisibleFrom(grid.P(0, 1), g, 1)
	for _, c := range cells {
		fmt.Print(c.Pos, " ")
	}
	fmt.Println()

	// Output:
	// (0,0) (0,1) (0,2)
}
