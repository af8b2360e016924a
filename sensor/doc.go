// Package sensor models the agent's limited-range perception: every
// non-barrier cell whose Euclidean distance to the center is at most the
// sensor radius is visible.
//
// The model is a pure function of the grid's current barrier layout. Barriers
// are removed from the result but do not occlude cells behind them, so
// visibility between two passable cells is symmetric for a fixed radius.
//
// Results are returned in row-major order, which callers rely on for stable
// tie-breaking.
package sensor
