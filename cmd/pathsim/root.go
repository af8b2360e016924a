package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/config"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "pathsim",
		Short: "Incremental grid exploration with A* planning",
		Long: `pathsim drives an agent with a limited-range sensor across a grid map.
Each tick it plans with A* toward the goal when it is in view, otherwise
toward the nearest unexplored cell, backtracking when nothing new is visible.

Maps are ASCII: '.' empty, '#' barrier, 'S' start, 'G' goal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file with PATHSIM_* overrides")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(f), newServeCmd(f))

	return cmd
}

// load reads the config and builds the logger writing to w.
func (f *rootFlags) load(w io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath, f.envFile)
	if err != nil {
		return cfg, nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	log, err := config.NewLogger(cfg.Log, w)
	if err != nil {
		return cfg, nil, err
	}

	return cfg, log, nil
}
