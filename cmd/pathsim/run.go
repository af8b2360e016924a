package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/explore"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
)

type runFlags struct {
	mapPath  string
	radius   float64
	maxSteps int
	interval time.Duration
	render   bool
	asJSON   bool
}

// summary is the final report printed by run.
type summary struct {
	Outcome  explore.Outcome `json:"outcome"`
	Steps    int             `json:"steps"`
	Explored int             `json:"explored"`
	Elapsed  time.Duration   `json:"elapsed_ns"`
	Position grid.Pos        `json:"position"`
}

func newRunCmd(root *rootFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation on a map file until it finishes",
		Example: `  pathsim run --map maze.txt
  pathsim run --map maze.txt --radius 3 --interval 50ms --render
  pathsim run --map maze.txt --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSim(cmd, root, f)
		},
	}
	cmd.Flags().StringVarP(&f.mapPath, "map", "m", "", "ASCII map file (required)")
	cmd.Flags().Float64VarP(&f.radius, "radius", "r", 0, "sensor radius in cells, overrides the config")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "step limit (default 2n²+n for n cells)")
	cmd.Flags().DurationVarP(&f.interval, "interval", "i", 0, "delay between ticks, overrides the config")
	cmd.Flags().BoolVar(&f.render, "render", false, "print the map after every tick")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the summary as JSON")
	_ = cmd.MarkFlagRequired("map")

	return cmd
}

func runSim(cmd *cobra.Command, root *rootFlags, f *runFlags) error {
	cfg, log, err := root.load(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.Sensor.Radius = f.radius
	}
	if flags.Changed("max-steps") {
		cfg.Run.MaxSteps = f.maxSteps
	}
	if flags.Changed("interval") {
		cfg.Run.TickInterval = f.interval
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	g, err := readMap(f.mapPath)
	if err != nil {
		return err
	}
	c, err := explore.New(g,
		explore.WithRadius(cfg.Sensor.Radius),
		explore.WithMaxSteps(cfg.Run.MaxSteps),
		explore.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if err = c.Begin(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.render {
		err = runRendered(cmd, c, cfg.Run.TickInterval, out)
	} else {
		err = c.Run(cmd.Context(), cfg.Run.TickInterval)
	}
	if err != nil {
		return err
	}

	pos, _ := c.Position()
	s := summary{
		Outcome:  c.Outcome(),
		Steps:    c.Steps(),
		Explored: c.ExploredCount(),
		Elapsed:  c.Elapsed(),
		Position: pos,
	}
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(out, "outcome:  %s\nsteps:    %d\nexplored: %d\nposition: %s\nelapsed:  %s\n",
		s.Outcome, s.Steps, s.Explored, s.Position, s.Elapsed)

	return nil
}

// runRendered ticks like Controller.Run but prints a frame after every tick.
func runRendered(cmd *cobra.Command, c *explore.Controller, interval time.Duration, out io.Writer) error {
	ctx := cmd.Context()
	var pace <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		pace = t.C
	}
	frame(out, c.Snapshot())
	for c.Phase() == explore.Running {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		}
		if _, err := c.Tick(); err != nil {
			return err
		}
		frame(out, c.Snapshot())
	}

	return nil
}

func frame(out io.Writer, s explore.Snapshot) {
	fmt.Fprintf(out, "step %d  %s  %s\n%s\n\n", s.Steps, s.Phase, s.Decision, strings.Join(s.Lines, "\n"))
}

// readMap loads an ASCII map file.
func readMap(path string) (*grid.Grid, error) {
	if path == "" {
		return nil, errors.New("run: --map is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("run: read map: %w", err)
	}
	g, err := grid.Parse(strings.Split(string(data), "\n"))
	if err != nil {
		return nil, fmt.Errorf("run: %s: %w", path, err)
	}

	return g, nil
}
