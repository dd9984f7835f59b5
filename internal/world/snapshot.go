package world

import (
	"cmp"
	"slices"
)

// RobotView is the observable state of one robot.
type RobotView struct {
	ID        int       `json:"id"`
	Location  Location  `json:"location"`
	Direction Direction `json:"direction"`
	Beepers   int       `json:"beepers"`
}

// Snapshot is a read-only copy of the world for observers.
type Snapshot struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Walls   []Wall        `json:"walls"`
	Beepers []BeeperStack `json:"beepers"`
	Robots  []RobotView   `json:"robots"`
}

// Snapshot copies the current state. Beepers are sorted by location so two
// snapshots of the same world compare equal.
func (w *World) Snapshot() Snapshot {
	width, height := w.Size()
	s := Snapshot{
		Width:  width,
		Height: height,
		Walls:  w.Walls(),
	}

	beepers := w.Beepers()
	s.Beepers = make([]BeeperStack, 0, len(beepers))
	for _, b := range beepers {
		s.Beepers = append(s.Beepers, b)
	}
	slices.SortFunc(s.Beepers, func(a, b BeeperStack) int {
		return cmp.Or(cmp.Compare(a.Location.Y, b.Location.Y), cmp.Compare(a.Location.X, b.Location.X))
	})

	robots := w.Robots()
	s.Robots = make([]RobotView, 0, len(robots))
	for _, r := range robots {
		s.Robots = append(s.Robots, RobotView{
			ID:        r.ID(),
			Location:  r.Location(),
			Direction: r.Direction(),
			Beepers:   r.Beepers(),
		})
	}
	return s
}
