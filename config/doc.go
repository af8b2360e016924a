// Package config loads pathsim settings.
//
// Priority, lowest first: built-in defaults, the YAML file, variables from
// a .env file, then the process environment. Environment keys use the
// PATHSIM_ prefix:
//
//	PATHSIM_GRID_ROWS       PATHSIM_GRID_COLS
//	PATHSIM_SENSOR_RADIUS
//	PATHSIM_MAX_STEPS       PATHSIM_TICK_INTERVAL
//	PATHSIM_LOG_LEVEL       PATHSIM_LOG_FORMAT
//	PATHSIM_SERVER_ADDR     PATHSIM_GIN_MODE
//
// A .env file never overrides a variable already set in the process.
package config
