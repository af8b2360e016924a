// Package server exposes simulations over HTTP with gin.
//
// Each simulation is an independent explore.Controller held under a UUID.
// Requests against one simulation are serialized by its own mutex, so
// different simulations never block each other.
//
//	POST   /v1/sims                 create {rows, cols, radius, max_steps, map}
//	GET    /v1/sims/:id             snapshot
//	POST   /v1/sims/:id/place       {row, col, role}
//	POST   /v1/sims/:id/clear       {row, col}
//	POST   /v1/sims/:id/begin
//	POST   /v1/sims/:id/reset
//	POST   /v1/sims/:id/tick?n=K    up to K ticks, stopping when the run finishes
//	DELETE /v1/sims/:id
//	GET    /metrics                 Prometheus exposition
//
// Status codes: 404 unknown simulation, 400 malformed body or position out
// of bounds, 409 command not valid in the current phase.
package server
