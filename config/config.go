package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value failed validation.
var ErrInvalid = errors.New("config: invalid value")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PATHSIM_"

// Config holds every runtime setting.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Sensor SensorConfig `yaml:"sensor"`
	Run    RunConfig    `yaml:"run"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// GridConfig sizes blank grids.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SensorConfig sets the sensor range in cells.
type SensorConfig struct {
	Radius float64 `yaml:"radius"`
}

// RunConfig controls run pacing and the step guard.
type RunConfig struct {
	MaxSteps     int           `yaml:"max_steps"`     // 0 = explore.DefaultMaxSteps
	TickInterval time.Duration `yaml:"tick_interval"` // 0 = back to back
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"gin_mode"` // debug, release, test
}

// Default returns the built-in settings: a 30×30 grid, radius 6 and a
// 100ms tick.
func Default() Config {
	return Config{
		Grid:   GridConfig{Rows: 30, Cols: 30},
		Sensor: SensorConfig{Radius: 6},
		Run:    RunConfig{MaxSteps: 0, TickInterval: 100 * time.Millisecond},
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Addr: ":8080", GinMode: "release"},
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty or
// missing), the given .env files (".env" when none) and the environment,
// then validates the result.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := loadDotEnv(envFiles); err != nil {
		return cfg, err
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadDotEnv exports .env entries that are not already set. Missing files
// are ignored.
func loadDotEnv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	return nil
}

func loadEnv(cfg *Config) error {
	var errs []error
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalid, EnvPrefix, key, v))
				return
			}
			*dst = n
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	setInt("GRID_ROWS", &cfg.Grid.Rows)
	setInt("GRID_COLS", &cfg.Grid.Cols)
	setInt("MAX_STEPS", &cfg.Run.MaxSteps)
	if v, ok := lookup("SENSOR_RADIUS"); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sSENSOR_RADIUS=%q is not a number", ErrInvalid, EnvPrefix, v))
		} else {
			cfg.Sensor.Radius = r
		}
	}
	if v, ok := lookup("TICK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sTICK_INTERVAL=%q is not a duration", ErrInvalid, EnvPrefix, v))
		} else {
			cfg.Run.TickInterval = d
		}
	}
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)
	setString("SERVER_ADDR", &cfg.Server.Addr)
	setString("GIN_MODE", &cfg.Server.GinMode)

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return strings.TrimSpace(v), true
}

// Validate rejects settings no simulation could run with.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Rows, c.Grid.Cols))
	}
	if c.Sensor.Radius < 0 || math.IsNaN(c.Sensor.Radius) || math.IsInf(c.Sensor.Radius, 0) {
		errs = append(errs, fmt.Errorf("%w: sensor radius %v", ErrInvalid, c.Sensor.Radius))
	}
	if c.Run.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("%w: max_steps %d", ErrInvalid, c.Run.MaxSteps))
	}
	if c.Run.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: tick_interval %v", ErrInvalid, c.Run.TickInterval))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format))
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("%w: gin mode %q", ErrInvalid, c.Server.GinMode))
	}

	return errors.Join(errs...)
}
