// Package world provides the grid model: locations, directions, walls,
// beeper stacks and the shared World that owns them.
package world

import "fmt"

// Location is a cell on the grid. It is a value type and can be used as a map key.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Loc is shorthand for Location{X: x, Y: y}.
func Loc(x, y int) Location {
	return Location{X: x, Y: y}
}

// Step returns the neighbouring location one cell away in the given direction.
func (l Location) Step(d Direction) Location {
	dx, dy := d.Delta()
	return Location{X: l.X + dx, Y: l.Y + dy}
}

// String returns the location as "(x, y)".
func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}
