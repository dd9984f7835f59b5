package world

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/gokarel/internal/logger"
)

// Orientation is the axis a wall runs along.
type Orientation int

const (
	// Horizontal walls run along a row and block north/south movement.
	Horizontal Orientation = iota
	// Vertical walls run along a column and block east/west movement.
	Vertical
)

// ParseOrientation accepts "horizontal" or "vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown wall orientation %q", s)
	}
}

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Wall is an impassable segment anchored at (X, Y).
//
// A horizontal wall blocks the boundary above row Y for every x in [X, X+Length).
// A vertical wall blocks the boundary east of column X for every y in [Y, Y+Length).
type Wall struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Length      int         `json:"length"`
	Orientation Orientation `json:"orientation"`
}

// NewWall creates a wall. Lengths below 1 are raised to 1.
func NewWall(x, y, length int, o Orientation) Wall {
	if length < 1 {
		logger.Log.WithFields(logrus.Fields{
			"x": x, "y": y, "length": length,
		}).Warn("invalid wall length, setting to 1")
		length = 1
	}
	return Wall{X: x, Y: y, Length: length, Orientation: o}
}

// Covers reports whether the wall blocks the cell boundary probed at (x, y)
// for walls of orientation o.
func (w Wall) Covers(x, y int, o Orientation) bool {
	if w.Orientation != o {
		return false
	}
	if o == Horizontal {
		return w.Y == y && x >= w.X && x < w.X+w.Length
	}
	return w.X == x && y >= w.Y && y < w.Y+w.Length
}
