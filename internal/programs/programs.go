// Package programs contains sample robot programs written against the student API.
package programs

import (
	"fmt"
	"sort"

	"github.com/samdwyer/gokarel/internal/entity"
	"github.com/samdwyer/gokarel/internal/game"
	"github.com/samdwyer/gokarel/internal/world"
)

var registry = map[string]game.Program{
	"harvest": Harvest,
	"stairs":  ClimbStairs,
	"drop":    DropAll,
	"square":  Square,
}

// Lookup returns the program registered under name.
func Lookup(name string) (game.Program, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q (have %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered programs in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Harvest walks forward until it meets a wall, picking up every beeper on the way.
func Harvest(r *entity.Robot) {
	for !r.Halted() {
		for !r.Halted() && r.NextToABeeper() {
			r.PickBeeper()
		}
		if !r.FrontIsClear() {
			return
		}
		r.Move()
	}
}

// ClimbStairs moves forward, stepping up whenever a wall is in the way, until it
// finds a beeper and picks it up.
func ClimbStairs(r *entity.Robot) {
	for !r.Halted() && !r.NextToABeeper() {
		if r.FrontIsClear() {
			r.Move()
			continue
		}
		r.TurnLeft()
		if !r.FrontIsClear() {
			return
		}
		r.Move()
		r.TurnRight()
	}
	r.PickBeeper()
}

// DropAll puts down every beeper the robot carries on its current cell.
// A robot with an unbounded supply would never finish, so it drops one.
func DropAll(r *entity.Robot) {
	if !r.HasBeepers() {
		return
	}
	if r.Beepers() == world.Unbounded {
		r.PutBeeper()
		return
	}
	for !r.Halted() && r.HasBeepers() {
		r.PutBeeper()
	}
}

// Square walks the edge of a 3x3 square counter-clockwise, turning left at each corner.
func Square(r *entity.Robot) {
	for side := 0; side < 4; side++ {
		for i := 0; i < 2; i++ {
			r.Move()
		}
		r.TurnLeft()
	}
}
