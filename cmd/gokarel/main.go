// Package main is the entry point for the gokarel simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/gokarel/data"
	"github.com/samdwyer/gokarel/internal/game"
	"github.com/samdwyer/gokarel/internal/logger"
	"github.com/samdwyer/gokarel/internal/maps"
	"github.com/samdwyer/gokarel/internal/observer"
	"github.com/samdwyer/gokarel/internal/programs"
	"github.com/samdwyer/gokarel/internal/telemetry"
	"github.com/samdwyer/gokarel/internal/ui"
)

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitNoMap
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain runs the simulator and returns the process exit code. Deferred cleanup
// (telemetry flush, log file) always runs before the process exits.
func realMain(args []string) int {
	// Not fatal - env vars might be set directly
	envErr := godotenv.Load()

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return exitUsage
	}

	flags := flag.NewFlagSet("gokarel", flag.ContinueOnError)
	flags.StringVar(&cfg.MapPath, "map", cfg.MapPath, "map file to load (default: bundled map)")
	flags.StringVar(&cfg.Program, "program", cfg.Program, fmt.Sprintf("program to run, one of %v", programs.Names()))
	flags.DurationVar(&cfg.StepDelay, "delay", cfg.StepDelay, "pause after each step")
	flags.StringVar(&cfg.ObserverAddr, "observer", cfg.ObserverAddr, "listen address of the websocket observer")
	flags.BoolVar(&cfg.TUI, "tui", cfg.TUI, "draw the world in the terminal")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	// The terminal belongs to the renderer, so logs go to a file while it runs.
	logOut := os.Stderr
	if cfg.TUI {
		f, err := os.OpenFile("gokarel.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return exitFailure
		}
		defer f.Close()
		logOut = f
	}
	logger.Init(logOut)
	if envErr != nil {
		logger.Log.WithError(envErr).Debug(".env file not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("telemetry setup failed, running without tracing")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Log.WithError(err).Warn("telemetry shutdown")
				}
			}()
		}
	}

	if err := run(ctx, stop, cfg); err != nil {
		if errors.Is(err, maps.ErrDefaultMapMissing) {
			logger.Log.WithError(err).Error("default map file not found, aborting")
			return exitNoMap
		}
		logger.Log.WithError(err).Error("simulation failed")
		return exitFailure
	}
	return exitOK
}

func run(ctx context.Context, stop context.CancelFunc, cfg game.Config) error {
	program, err := programs.Lookup(cfg.Program)
	if err != nil {
		return err
	}

	session, err := game.Open(ctx, cfg, data.FS())
	if err != nil {
		return err
	}
	defer session.Close()

	if cfg.ObserverAddr != "" {
		hub := observer.NewHub(logger.Log)
		session.Clock().AddObserver(hub)

		mux := http.NewServeMux()
		mux.Handle("/observe", hub.Handler())
		srv := &http.Server{Addr: cfg.ObserverAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log.WithError(err).Error("observer server stopped")
			}
		}()
		defer srv.Close()
		logger.Log.WithField("addr", cfg.ObserverAddr).Info("observer listening on /observe")
	}

	var screen *ui.Screen
	if cfg.TUI {
		screen, err = ui.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer screen.Close()

		renderer := ui.NewRenderer(screen)
		session.Clock().AddObserver(renderer)
		renderer.Render(session.World().Snapshot(), "ready")
		go screen.WatchQuit(ctx, stop)
	}

	robots := session.Robots()
	if len(robots) == 0 {
		r, err := session.DefaultRobot()
		if err != nil {
			return err
		}
		robots = append(robots, r)
	}

	jobs := make([]game.Job, 0, len(robots))
	for _, r := range robots {
		jobs = append(jobs, game.Job{Robot: r, Program: program})
	}
	if err := session.Run(ctx, jobs...); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if screen != nil {
		// Keep the final frame up until the user quits.
		<-ctx.Done()
		return nil
	}

	snapshot := session.World().Snapshot()
	fmt.Print(ui.Draw(snapshot).String())
	if session.Clock().IsDead() {
		fmt.Printf("dead after %d steps: %s\n", session.Clock().Steps(), session.Clock().Reason())
	} else {
		fmt.Printf("finished after %d steps\n", session.Clock().Steps())
	}
	return nil
}
