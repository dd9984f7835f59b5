package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gokarel/internal/logger"
	"github.com/samdwyer/gokarel/internal/telemetry"
	"github.com/samdwyer/gokarel/internal/world"
)

// StepEvent is delivered to observers after every committed action.
type StepEvent struct {
	Step     int64          `json:"step"`
	State    State          `json:"state"`
	Snapshot world.Snapshot `json:"snapshot"`
}

// Observer perceives the world once per step. OnStep runs before the acting
// robot continues, so an observer always sees fully committed state.
type Observer interface {
	OnStep(ev StepEvent)
	OnDeath(reason string, snapshot world.Snapshot)
}

// Clock is the coordination point of a run. It holds the monotonic dead flag,
// paces steps and fans them out to observers.
type Clock struct {
	ctx   context.Context
	delay time.Duration
	world *world.World

	dead     atomic.Bool
	reasonMu sync.Mutex
	reason   string

	steps atomic.Int64

	// stepMu delivers one step at a time to observers.
	stepMu      sync.Mutex
	observersMu sync.RWMutex
	observers   []Observer
}

// NewClock creates a live clock that sleeps delay after each step. ctx parents
// the spans the clock records and should outlive the run.
func NewClock(ctx context.Context, delay time.Duration) *Clock {
	return &Clock{ctx: ctx, delay: delay}
}

// watch sets the world snapshots are taken from.
func (c *Clock) watch(w *world.World) {
	c.world = w
}

// AddObserver registers an observer for subsequent steps.
func (c *Clock) AddObserver(o Observer) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Clock) currentObservers() []Observer {
	c.observersMu.RLock()
	defer c.observersMu.RUnlock()
	return append([]Observer(nil), c.observers...)
}

func (c *Clock) snapshot() world.Snapshot {
	if c.world == nil {
		return world.Snapshot{}
	}
	return c.world.Snapshot()
}

// Step is called after every committed change. Observers are notified before it
// returns, then the caller sleeps for the configured delay.
func (c *Clock) Step() {
	c.notifyStep(c.steps.Add(1))

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}

// notifyStep delivers step n to every observer, one step at a time. A panicking
// observer propagates to the acting robot but never leaves stepMu held.
func (c *Clock) notifyStep(n int64) {
	observers := c.currentObservers()
	if len(observers) == 0 {
		return
	}

	c.stepMu.Lock()
	defer c.stepMu.Unlock()
	ev := StepEvent{Step: n, State: c.State(), Snapshot: c.snapshot()}
	for _, o := range observers {
		o.OnStep(ev)
	}
}

// Die kills the simulation. Only the first reason is kept; later calls are ignored.
func (c *Clock) Die(reason string) {
	if !c.dead.CompareAndSwap(false, true) {
		logger.Log.WithField("reason", reason).Debug("simulation already dead")
		return
	}

	c.reasonMu.Lock()
	c.reason = reason
	c.reasonMu.Unlock()

	steps := c.steps.Load()
	logger.Log.WithField("step", steps).Error(reason)

	_, span := telemetry.Tracer("arena").Start(c.ctx, "arena.die")
	span.SetAttributes(
		attribute.String("arena.reason", reason),
		attribute.Int64("arena.steps", steps),
	)
	span.End()

	snapshot := c.snapshot()
	c.stepMu.Lock()
	defer c.stepMu.Unlock()
	for _, o := range c.currentObservers() {
		o.OnDeath(reason, snapshot)
	}
}

// IsDead reports whether the simulation has died.
func (c *Clock) IsDead() bool {
	return c.dead.Load()
}

// Alive reports whether robots may still act.
func (c *Clock) Alive() bool {
	return !c.dead.Load()
}

// State returns StateDead once the simulation has died, StateRunning before.
func (c *Clock) State() State {
	if c.IsDead() {
		return StateDead
	}
	return StateRunning
}

// Reason returns why the simulation died, or "" while it is alive.
func (c *Clock) Reason() string {
	c.reasonMu.Lock()
	defer c.reasonMu.Unlock()
	return c.reason
}

// Steps returns the number of steps taken so far.
func (c *Clock) Steps() int64 {
	return c.steps.Load()
}
