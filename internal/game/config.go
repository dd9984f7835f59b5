package game

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// Default world dimensions, used until a map says otherwise.
	DefaultWidth  = 10
	DefaultHeight = 10

	// DefaultMap is the embedded map used when no map is given or the given one is missing.
	DefaultMap = "default.yaml"

	// DefaultStepDelay paces the simulation so an observer can follow it.
	DefaultStepDelay = 200 * time.Millisecond
)

// Config holds simulation configuration options.
type Config struct {
	// MapPath is the map file to load. Empty means the default map.
	MapPath string

	// StepDelay is how long each step pauses after observers have been notified.
	StepDelay time.Duration

	// Width and Height size the world before the map is applied.
	Width, Height int

	// ObserverAddr, when set, is the listen address of the websocket observer.
	ObserverAddr string

	// Program names the built-in program the CLI runs.
	Program string

	// TUI enables the terminal renderer.
	TUI bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		StepDelay: DefaultStepDelay,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Program:   "harvest",
		TUI:       true,
	}
}

// ConfigFromEnv reads KAREL_* variables on top of DefaultConfig. A variable that is
// set but cannot be parsed is an error.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("KAREL_MAP"); v != "" {
		cfg.MapPath = v
	}
	if v := os.Getenv("KAREL_OBSERVER_ADDR"); v != "" {
		cfg.ObserverAddr = v
	}
	if v := os.Getenv("KAREL_PROGRAM"); v != "" {
		cfg.Program = v
	}

	if v := os.Getenv("KAREL_STEP_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("KAREL_STEP_DELAY: %w", err)
		}
		cfg.StepDelay = d
	}

	var err error
	if cfg.Width, err = envInt("KAREL_WIDTH", cfg.Width); err != nil {
		return cfg, err
	}
	if cfg.Height, err = envInt("KAREL_HEIGHT", cfg.Height); err != nil {
		return cfg, err
	}

	if v := os.Getenv("KAREL_TUI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("KAREL_TUI: %w", err)
		}
		cfg.TUI = b
	}

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	if n < 1 {
		return fallback, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}
