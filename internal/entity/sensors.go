package entity

import "github.com/samdwyer/gokarel/internal/world"

// FrontIsClear reports whether no wall blocks the cell ahead.
func (r *Robot) FrontIsClear() bool {
	return r.isClear(r.Direction())
}

// LeftIsClear reports whether no wall blocks the cell to the robot's left.
func (r *Robot) LeftIsClear() bool {
	return r.isClear(r.Direction().Left())
}

// RightIsClear reports whether no wall blocks the cell to the robot's right.
func (r *Robot) RightIsClear() bool {
	return r.isClear(r.Direction().Right())
}

// BackIsClear reports whether no wall blocks the cell behind the robot.
func (r *Robot) BackIsClear() bool {
	return r.isClear(r.Direction().Opposite())
}

// NextToABeeper reports whether the robot stands on at least one beeper.
func (r *Robot) NextToABeeper() bool {
	loc := r.Location()
	return r.world.CheckBeepers(loc.X, loc.Y)
}

// NextToARobot reports whether another registered robot shares the robot's cell.
func (r *Robot) NextToARobot() bool {
	loc := r.Location()
	return r.world.IsNextToARobot(r, loc.X, loc.Y)
}

// NextTo reports whether other stands on the same cell as r.
func (r *Robot) NextTo(other *Robot) bool {
	return r.Location() == other.Location()
}

// HasBeepers reports whether the inventory holds at least one beeper.
func (r *Robot) HasBeepers() bool {
	b := r.Beepers()
	return b > 0 || b == world.Unbounded
}

func (r *Robot) FacingNorth() bool { return r.Direction() == world.North }
func (r *Robot) FacingSouth() bool { return r.Direction() == world.South }
func (r *Robot) FacingEast() bool  { return r.Direction() == world.East }
func (r *Robot) FacingWest() bool  { return r.Direction() == world.West }

// isClear probes the wall between the robot's cell and its neighbour in dir.
func (r *Robot) isClear(dir world.Direction) bool {
	probe := wallProbe(r.Location(), dir)
	return !r.world.CheckWall(probe.X, probe.Y, dir.Blocking())
}

// wallProbe returns the location a wall blocking dir is anchored at. Walls sit on
// the north and east edges of their cell, so looking south or west means looking
// at the preceding cell.
func wallProbe(loc world.Location, dir world.Direction) world.Location {
	switch dir {
	case world.South:
		return world.Loc(loc.X, loc.Y-1)
	case world.West:
		return world.Loc(loc.X-1, loc.Y)
	default:
		return loc
	}
}
