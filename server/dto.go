package server

import (
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
)

// CreateRequest creates a simulation. Map, when present, is an ASCII map
// (". # S G") and overrides Rows and Cols. Zero values select the server
// defaults.
type CreateRequest struct {
	Rows     int      `json:"rows" binding:"omitempty,min=1,max=1000"`
	Cols     int      `json:"cols" binding:"omitempty,min=1,max=1000"`
	Radius   *float64 `json:"radius" binding:"omitempty,min=0"`
	MaxSteps int      `json:"max_steps" binding:"omitempty,min=0"`
	Map      []string `json:"map"`
}

// CreateResponse returns the new simulation id.
type CreateResponse struct {
	ID       string           `json:"id"`
	Snapshot explore.Snapshot `json:"snapshot"`
}

// CellRequest addresses one cell. Role is required by place only.
type CellRequest struct {
	Row  *int   `json:"row" binding:"required"`
	Col  *int   `json:"col" binding:"required"`
	Role string `json:"role"`
}

// TickQuery bounds the number of ticks in one request.
type TickQuery struct {
	N int `form:"n" binding:"omitempty,min=1,max=100000"`
}

// TickResponse lists the reports of the ticks performed and the state after
// the last one.
type TickResponse struct {
	Reports  []explore.Report `json:"reports"`
	Snapshot explore.Snapshot `json:"snapshot"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
