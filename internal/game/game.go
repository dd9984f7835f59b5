package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gokarel/internal/entity"
	"github.com/samdwyer/gokarel/internal/logger"
	"github.com/samdwyer/gokarel/internal/maps"
	"github.com/samdwyer/gokarel/internal/telemetry"
	"github.com/samdwyer/gokarel/internal/world"
)

// ErrSessionClosed is returned when a robot is created on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// Program is a student program driving one robot.
type Program func(r *entity.Robot)

// Job pairs a robot with the program that drives it.
type Job struct {
	Robot   *entity.Robot
	Program Program
}

// Session is one simulation run: a clock, the world it paces and the robots in it.
type Session struct {
	cfg   Config
	clock *Clock
	world *world.World

	nextID atomic.Int64
	closed atomic.Bool
}

// New creates a session with an empty world of the configured size.
func New(ctx context.Context, cfg Config) *Session {
	clock := NewClock(ctx, cfg.StepDelay)
	w := world.New(DefaultWidth, DefaultHeight, clock)
	clock.watch(w)

	width, height := cfg.Width, cfg.Height
	if width < 1 {
		width = DefaultWidth
	}
	if height < 1 {
		height = DefaultHeight
	}
	w.SetSize(width, height)

	return &Session{cfg: cfg, clock: clock, world: w}
}

// Open creates a session and populates it from cfg.MapPath, falling back to the
// default map in maps.
func Open(ctx context.Context, cfg Config, defaults fs.FS) (*Session, error) {
	tracer := telemetry.Tracer("game")
	openCtx, span := tracer.Start(ctx, "session.open")
	defer span.End()

	s := New(ctx, cfg)
	if err := maps.Load(openCtx, defaults, cfg.MapPath, DefaultMap, s); err != nil {
		return nil, err
	}

	width, height := s.world.Size()
	span.SetAttributes(
		attribute.Int("world.width", width),
		attribute.Int("world.height", height),
		attribute.Int("world.robots", len(s.world.Robots())),
		attribute.Int("world.walls", len(s.world.Walls())),
	)
	return s, nil
}

// Close ends the session. Existing robots keep working, new ones cannot be created.
func (s *Session) Close() {
	s.closed.Store(true)
}

// Clock returns the session's clock.
func (s *Session) Clock() *Clock {
	return s.clock
}

// World returns the session's world.
func (s *Session) World() *world.World {
	return s.world
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config {
	return s.cfg
}

// Robots returns the robots currently registered with the world.
func (s *Session) Robots() []*entity.Robot {
	agents := s.world.Robots()
	robots := make([]*entity.Robot, 0, len(agents))
	for _, a := range agents {
		if r, ok := a.(*entity.Robot); ok {
			robots = append(robots, r)
		}
	}
	return robots
}

func (s *Session) newRobot(x, y int, dir world.Direction, beepers int) *entity.Robot {
	id := int(s.nextID.Add(1))
	return entity.New(id, s.world, s.clock, world.Loc(x, y), dir, beepers)
}

// NewRobot creates a robot and registers it with a step.
func (s *Session) NewRobot(x, y int, dir world.Direction, beepers int) (*entity.Robot, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	r := s.newRobot(x, y, dir, beepers)
	s.world.AddRobot(r)
	return r, nil
}

// DefaultRobot creates a robot at (1, 1) facing east with no beepers.
func (s *Session) DefaultRobot() (*entity.Robot, error) {
	return s.NewRobot(1, 1, world.East, 0)
}

// =============================================================================
// Load-time insertion surface (maps.Populator)
// =============================================================================

// AddObjectBeeper places a stack of count beepers, which may be world.Unbounded.
// A count below 1 places nothing.
func (s *Session) AddObjectBeeper(x, y, count int) {
	if count < 1 && count != world.Unbounded {
		logger.Log.WithField("location", world.Loc(x, y)).
			WithField("beepers", count).
			Warn("ignoring beeper stack with no beepers")
		return
	}
	s.world.PutBeepers(x, y, count)
}

// AddObjectWall places a wall.
func (s *Session) AddObjectWall(x, y, length int, o world.Orientation) {
	s.world.AddWall(world.NewWall(x, y, length, o))
}

// AddObjectRobot creates a robot from map data without stepping.
func (s *Session) AddObjectRobot(x, y, direction, beepers int) error {
	dir, err := world.DirectionFromIndex(direction)
	if err != nil {
		return err
	}
	s.world.AddRobotInternal(s.newRobot(x, y, dir, beepers))
	return nil
}

// LoadPropertiesDefaultSize resizes the world.
func (s *Session) LoadPropertiesDefaultSize(width, height int) {
	s.world.SetSize(width, height)
}

// =============================================================================
// Running programs
// =============================================================================

// Run starts every job on its own goroutine and waits for all of them, or for ctx
// to be done. A panicking program kills the simulation instead of the process.
//
// When ctx is done first the simulation dies with "interrupted" and Run returns
// ctx.Err() once every robot's in-flight action has finished. Programs may still
// be running, but their actions are no-ops and nothing steps after Run returns.
func (s *Session) Run(ctx context.Context, jobs ...Job) error {
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runJob(job)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.clock.Die("interrupted")
		for _, job := range jobs {
			// Halted waits for the robot's current action, if any.
			job.Robot.Halted()
		}
		return ctx.Err()
	}

	entry := logger.Log.WithField("steps", s.clock.Steps())
	if s.clock.IsDead() {
		entry.WithField("reason", s.clock.Reason()).Warn("programs finished on a dead world")
	} else {
		entry.Info("programs finished")
	}
	return nil
}

func (s *Session) runJob(job Job) {
	defer func() {
		if p := recover(); p != nil {
			s.clock.Die(fmt.Sprintf("robot %d program panicked: %v", job.Robot.ID(), p))
		}
	}()
	job.Program(job.Robot)
}
