package world

import "fmt"

// Direction is one of the four cardinal orientations a robot can face.
// The numeric order is the one map files use to refer to directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in index order.
var Directions = [...]Direction{North, East, South, West}

// DirectionFromIndex converts a map-file direction index into a Direction.
func DirectionFromIndex(i int) (Direction, error) {
	if i < 0 || i >= len(Directions) {
		return North, fmt.Errorf("direction index %d out of range [0, %d)", i, len(Directions))
	}
	return Directions[i], nil
}

// Left returns the direction after a quarter turn counter-clockwise.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction after a quarter turn clockwise.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the x and y offsets of one step in this direction.
// North increases y and East increases x.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Blocking returns the orientation of wall that stops movement in this direction.
func (d Direction) Blocking() Orientation {
	if d == North || d == South {
		return Horizontal
	}
	return Vertical
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}
