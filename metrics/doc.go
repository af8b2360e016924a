// Package metrics exports exploration activity as Prometheus metrics.
//
// A Collector implements explore.Observer, so it can be handed to
// explore.WithObserver and shared by any number of controllers:
//
//	reg := prometheus.NewRegistry()
//	col, _ := metrics.New(reg)
//	c, _ := explore.New(g, explore.WithObserver(col))
//
// Metric families (namespace "pathsim"):
//
//	search_calls_total{decision,result}   pathfinder calls
//	search_expanded_cells                 cells expanded per call
//	search_duration_seconds               wall time per call
//	ticks_total{decision}                 completed ticks
//	runs_finished_total{outcome}          runs leaving Running
//	run_steps                             moves per finished run
//	run_duration_seconds                  elapsed time per finished run
//	sessions_active                       live simulations (server only)
package metrics
