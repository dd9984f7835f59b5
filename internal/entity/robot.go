// Package entity provides the robots that student programs drive.
package entity

import (
	"fmt"
	"sync"

	"github.com/samdwyer/gokarel/internal/logger"
	"github.com/samdwyer/gokarel/internal/world"
)

// Arena is the simulation clock a robot answers to.
type Arena interface {
	IsDead() bool
	Die(reason string)
	Step()
}

// Robot is a directional agent carrying beepers around a World.
//
// Actions (Move, TurnLeft, PutBeeper, ...) check legality against the world,
// report illegal moves to the arena and never return errors. Sensors are pure
// queries and keep working after the simulation has died.
type Robot struct {
	id    int
	world *world.World
	arena Arena

	// actMu serializes this robot's actions and is held across the step.
	actMu    sync.Mutex
	exploded bool

	// mu guards the observable state below; observers read it during a step.
	mu        sync.RWMutex
	loc       world.Location
	direction world.Direction
	beepers   int
}

// New creates a robot. It does not register the robot with the world.
// Negative beeper counts other than world.Unbounded are raised to 0.
func New(id int, w *world.World, arena Arena, loc world.Location, dir world.Direction, beepers int) *Robot {
	if beepers < 0 && beepers != world.Unbounded {
		logger.Log.WithField("beepers", beepers).Warn("invalid amount of beepers, setting to 0")
		beepers = 0
	}
	return &Robot{
		id:        id,
		world:     w,
		arena:     arena,
		loc:       loc,
		direction: dir,
		beepers:   beepers,
	}
}

// ID returns the robot's identifier within its session.
func (r *Robot) ID() int {
	return r.id
}

// Location returns the robot's current cell.
func (r *Robot) Location() world.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loc
}

// Direction returns the way the robot is facing.
func (r *Robot) Direction() world.Direction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.direction
}

// Beepers returns the robot's inventory, possibly world.Unbounded.
func (r *Robot) Beepers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.beepers
}

// String describes the robot for logs.
func (r *Robot) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("robot %d at %v facing %v with %s beepers",
		r.id, r.loc, r.direction, world.FormatCount(r.beepers))
}

// Halted reports whether this robot's actions have become no-ops, either because
// the simulation died or because the robot exploded. Programs use it to stop
// looping on sensors that can no longer change.
func (r *Robot) Halted() bool {
	r.actMu.Lock()
	defer r.actMu.Unlock()
	return r.arena.IsDead() || r.exploded
}

// act is the single gate every action goes through. It runs fn unless the
// simulation is dead or the robot has exploded, and steps when fn reports a
// committed change.
func (r *Robot) act(fn func() bool) {
	r.actMu.Lock()
	defer r.actMu.Unlock()

	if r.arena.IsDead() || r.exploded {
		return
	}
	if fn() {
		r.arena.Step()
	}
}
