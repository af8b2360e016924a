package explore

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/astar"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/grid"
	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/sensor"
)

// Sentinel errors for controller commands.
var (
	// ErrNilGrid indicates New was given a nil grid.
	ErrNilGrid = errors.New("explore: grid is nil")

	// ErrInvalidCommand indicates a command issued in the wrong phase or
	// without its preconditions (e.g. Begin without Start and Goal).
	ErrInvalidCommand = errors.New("explore: invalid command")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("explore: invalid option supplied")
)

// Phase is the controller's run state.
type Phase uint8

const (
	// Idle accepts map edits and Begin.
	Idle Phase = iota
	// Running advances one step per Tick.
	Running
	// Finished is terminal until Reset.
	Finished
)

var phaseNames = [...]string{"idle", "running", "finished"}

// String returns the lower-case phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}

	return fmt.Sprintf("phase(%d)", uint8(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Outcome records why a run finished.
type Outcome uint8

const (
	// OutcomeNone means the run has not finished.
	OutcomeNone Outcome = iota
	// OutcomeGoalReached means the agent stepped onto the Goal.
	OutcomeGoalReached
	// OutcomeExhausted means no explored cell can reveal anything new.
	OutcomeExhausted
	// OutcomeNoPath means the chosen target produced no usable route.
	OutcomeNoPath
	// OutcomeStepLimit means the run hit MaxSteps.
	OutcomeStepLimit
)

var outcomeNames = [...]string{"none", "goal_reached", "exhausted", "no_path", "step_limit"}

// String returns the snake-case outcome name.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}

	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Decision is the target-selection branch taken by a tick.
type Decision uint8

const (
	// DecisionNone means no target was selected.
	DecisionNone Decision = iota
	// DecisionGoal plans straight to the visible Goal.
	DecisionGoal
	// DecisionFrontier plans to the nearest visible unexplored cell.
	DecisionFrontier
	// DecisionBacktrack plans to an explored cell with unexplored cells in view.
	DecisionBacktrack
)

var decisionNames = [...]string{"none", "goal", "frontier", "backtrack"}

// String returns the lower-case decision name.
func (d Decision) String() string {
	if int(d) < len(decisionNames) {
		return decisionNames[d]
	}

	return fmt.Sprintf("decision(%d)", uint8(d))
}

// MarshalText encodes the decision by name.
func (d Decision) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Clock is the time source for run timing.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Observer receives controller events, typically to export metrics.
type Observer interface {
	// ObserveSearch is called after every pathfinder call.
	ObserveSearch(d Decision, res *astar.Result, err error)
	// ObserveTick is called after every completed Tick.
	ObserveTick(r Report)
	// ObserveFinish is called once when a run leaves Running.
	ObserveFinish(o Outcome, steps int, elapsed time.Duration)
}

// NopObserver ignores every event.
type NopObserver struct{}

// ObserveSearch does nothing.
func (NopObserver) ObserveSearch(Decision, *astar.Result, error) {}

// ObserveTick does nothing.
func (NopObserver) ObserveTick(Report) {}

// ObserveFinish does nothing.
func (NopObserver) ObserveFinish(Outcome, int, time.Duration) {}

// Options configures a Controller.
type Options struct {
	// Radius is the sensor range. Default sensor.DefaultRadius.
	Radius float64
	// MaxSteps finishes a run with OutcomeStepLimit once reached.
	// 0 selects DefaultMaxSteps for the grid, which no run can exceed.
	MaxSteps int
	// Clock supplies run timestamps. Default SystemClock.
	Clock Clock
	// Logger receives phase transitions (Info) and tick decisions (Debug).
	Logger *slog.Logger
	// Observer receives search, tick and finish events.
	Observer Observer

	err error
}

// Option represents a functional option for configuring a Controller.
type Option func(*Options)

// DefaultOptions returns Options with the default radius, the derived step
// limit, the system clock, a discarding logger and no observer.
func DefaultOptions() Options {
	return Options{
		Radius:   sensor.DefaultRadius,
		MaxSteps: 0,
		Clock:    SystemClock,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer: NopObserver{},
	}
}

// WithRadius sets the sensor range. Invalid radii surface as
// ErrOptionViolation from New.
func WithRadius(r float64) Option {
	return func(o *Options) {
		o.Radius = r
	}
}

// DefaultMaxSteps bounds the moves of any run on a grid of n cells.
//
// A committed target is reached within n-1 moves, each frontier target
// adds a cell to the explored set, and a backtrack leg always ends in a
// new frontier target. So a run makes at most 2n+1 legs of at most n-1
// moves each.
func DefaultMaxSteps(n int) int { return 2*n*n + n }

// WithMaxSteps sets the per-run step limit.
//
//	n > 0:  finish after n steps
//	n == 0: DefaultMaxSteps(rows×cols)
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithClock overrides the run clock.
func WithClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers an event observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// SearchStats aggregates the pathfinder calls made during one tick.
type SearchStats struct {
	Calls    int           `json:"calls"`
	Expanded int           `json:"expanded"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Report describes what one Tick did.
type Report struct {
	Step     int         `json:"step"`
	Decision Decision    `json:"decision"`
	Target   *grid.Pos   `json:"target,omitempty"`
	Route    []grid.Pos  `json:"route,omitempty"`
	Moved    bool        `json:"moved"`
	From     grid.Pos    `json:"from"`
	To       grid.Pos    `json:"to"`
	Visible  []grid.Pos  `json:"visible,omitempty"`
	Frontier []grid.Pos  `json:"frontier,omitempty"`
	Search   SearchStats `json:"search"`
	Phase    Phase       `json:"phase"`
	Outcome  Outcome     `json:"outcome"`
}
