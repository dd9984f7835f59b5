package entity

import (
	"fmt"

	"github.com/samdwyer/gokarel/internal/world"
)

// Move walks one cell forward. Walking into a wall kills the simulation and
// leaves the robot where it was.
func (r *Robot) Move() {
	r.act(func() bool {
		loc, dir := r.Location(), r.Direction()
		if !r.isClear(dir) {
			r.arena.Die(fmt.Sprintf("tried to walk %v through a wall at %v", dir, loc))
			return false
		}

		r.mu.Lock()
		r.loc = loc.Step(dir)
		r.mu.Unlock()
		return true
	})
}

// TurnLeft rotates the robot a quarter turn counter-clockwise.
func (r *Robot) TurnLeft() {
	r.turn(world.Direction.Left)
}

// TurnRight rotates the robot a quarter turn clockwise.
func (r *Robot) TurnRight() {
	r.turn(world.Direction.Right)
}

func (r *Robot) turn(rotate func(world.Direction) world.Direction) {
	r.act(func() bool {
		r.mu.Lock()
		r.direction = rotate(r.direction)
		r.mu.Unlock()
		return true
	})
}

// PutBeeper drops one beeper from the inventory onto the current cell.
// Putting with an empty inventory kills the simulation.
func (r *Robot) PutBeeper() {
	r.act(func() bool {
		if !r.HasBeepers() {
			r.arena.Die("trying to put non-existent beepers")
			return false
		}

		r.mu.Lock()
		r.beepers = world.AddCount(r.beepers, -1)
		loc := r.loc
		r.mu.Unlock()

		r.world.PutBeepers(loc.X, loc.Y, 1)
		return true
	})
}

// PickBeeper takes one beeper from the current cell into the inventory.
// Picking from an empty cell kills the simulation.
func (r *Robot) PickBeeper() {
	r.act(func() bool {
		loc := r.Location()
		if !r.world.CheckBeepers(loc.X, loc.Y) {
			r.arena.Die("trying to pick non-existent beepers")
			return false
		}

		r.mu.Lock()
		r.beepers = world.AddCount(r.beepers, 1)
		r.mu.Unlock()

		r.world.PutBeepers(loc.X, loc.Y, -1)
		return true
	})
}

// Explode removes the robot from the world. Like every other action it is a
// no-op once the simulation is dead, and the removal is a step of its own.
// Further actions on an exploded robot do nothing.
func (r *Robot) Explode() {
	r.act(func() bool {
		r.exploded = true
		r.world.RemoveRobot(r)
		return false // RemoveRobot already stepped
	})
}
