// Package pathplanner is an incremental grid exploration engine: an agent
// with a limited-range sensor explores a partially known grid and plans
// with A* toward the goal once it is in view.
//
// The module is organized as small packages, each usable on its own:
//
//	grid/         Grid, Cell, Role and Pos, plus the ASCII map codec
//	astar/        A* on 4-connected grids with a Manhattan heuristic
//	sensor/       circular visibility around a cell
//	bfs/          reachability flood over the current barrier layout
//	explore/      the exploration controller and its snapshots
//	metrics/      Prometheus observer for controller events
//	config/       YAML, .env and PATHSIM_* settings, slog setup
//	server/       gin HTTP surface over many independent simulations
//	cmd/pathsim/  CLI for headless runs and the HTTP server
//
// A minimal run:
//
//	g, _ := grid.Parse([]string{"S..", ".#.", "..G"})
//	c, _ := explore.New(g, explore.WithRadius(4))
//	_ = c.Begin()
//	_ = c.Run(ctx, 0)
//	fmt.Println(c.Outcome(), c.Steps())
//
// Each tick the controller senses, floods reachability from the agent and
// picks a target: the goal when visible and reachable, else the nearest
// unexplored visible cell, else an explored cell from which something new
// would come into view. It then moves one cell along the A* route.
package pathplanner
