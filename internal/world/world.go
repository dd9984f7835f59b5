package world

import (
	"slices"
	"sync"
)

// Agent is anything the world keeps in its robot registry.
type Agent interface {
	ID() int
	Location() Location
	Direction() Direction
	Beepers() int
}

// Stepper is the synchronization point invoked after a committed change.
type Stepper interface {
	Step()
}

// World is the authoritative store of beepers, walls and robots.
//
// Each collection has its own lock and no method holds more than one of them
// at a time. Read accessors return copies that stay valid while other
// goroutines keep mutating the world.
type World struct {
	stepper Stepper

	beepersMu sync.Mutex
	beepers   map[Location]BeeperStack

	robotsMu sync.RWMutex
	robots   []Agent

	// wallsMu also guards the size and the boundary walls, which live in walls.
	wallsMu       sync.RWMutex
	walls         []Wall
	width, height int
	xAxisWall     Wall
	yAxisWall     Wall
}

// New creates an empty world enclosed by its two boundary walls.
func New(width, height int, stepper Stepper) *World {
	w := &World{
		stepper: stepper,
		beepers: make(map[Location]BeeperStack),
		robots:  make([]Agent, 0),
		walls:   make([]Wall, 0, 2),
		width:   width,
		height:  height,
	}
	w.xAxisWall = NewWall(1, 0, width, Horizontal)
	w.yAxisWall = NewWall(0, 1, height, Vertical)
	w.walls = append(w.walls, w.xAxisWall, w.yAxisWall)
	return w
}

func (w *World) step() {
	if w.stepper != nil {
		w.stepper.Step()
	}
}

// =============================================================================
// Beepers
// =============================================================================

// PutBeepers adjusts the stack at (x, y) by delta. Unbounded stacks ignore finite
// adjustments, a delta of Unbounded makes the stack Unbounded, and a stack that
// would drop below one beeper is removed.
func (w *World) PutBeepers(x, y, delta int) {
	loc := Loc(x, y)

	w.beepersMu.Lock()
	defer w.beepersMu.Unlock()

	if delta == Unbounded {
		w.beepers[loc] = NewBeeperStack(loc, Unbounded)
		return
	}

	old := 0
	if b, ok := w.beepers[loc]; ok {
		old = b.Count
	}
	if old == Unbounded {
		return
	}

	if old+delta < 1 {
		delete(w.beepers, loc)
		return
	}
	w.beepers[loc] = NewBeeperStack(loc, old+delta)
}

// CheckBeepers reports whether any beepers lie at (x, y).
func (w *World) CheckBeepers(x, y int) bool {
	w.beepersMu.Lock()
	defer w.beepersMu.Unlock()
	_, ok := w.beepers[Loc(x, y)]
	return ok
}

// BeepersAt returns the stack at (x, y), if any.
func (w *World) BeepersAt(x, y int) (BeeperStack, bool) {
	w.beepersMu.Lock()
	defer w.beepersMu.Unlock()
	b, ok := w.beepers[Loc(x, y)]
	return b, ok
}

// Beepers returns a copy of the beeper mapping.
func (w *World) Beepers() map[Location]BeeperStack {
	w.beepersMu.Lock()
	defer w.beepersMu.Unlock()
	out := make(map[Location]BeeperStack, len(w.beepers))
	for loc, b := range w.beepers {
		out[loc] = b
	}
	return out
}

// =============================================================================
// Walls
// =============================================================================

// AddWall appends a wall. Walls are never removed except the boundary walls on resize.
func (w *World) AddWall(wall Wall) {
	w.wallsMu.Lock()
	defer w.wallsMu.Unlock()
	w.walls = append(w.walls, wall)
}

// CheckWall reports whether any wall of orientation o covers the boundary probed at (x, y).
func (w *World) CheckWall(x, y int, o Orientation) bool {
	w.wallsMu.RLock()
	defer w.wallsMu.RUnlock()
	for _, wall := range w.walls {
		if wall.Covers(x, y, o) {
			return true
		}
	}
	return false
}

// Walls returns a copy of the wall list, boundary walls included.
func (w *World) Walls() []Wall {
	w.wallsMu.RLock()
	defer w.wallsMu.RUnlock()
	return slices.Clone(w.walls)
}

// BoundaryWalls returns the current horizontal and vertical boundary walls.
func (w *World) BoundaryWalls() (horizontal, vertical Wall) {
	w.wallsMu.RLock()
	defer w.wallsMu.RUnlock()
	return w.xAxisWall, w.yAxisWall
}

// SetSize resizes the world, replacing the boundary wall of each dimension that changed.
// Walls placed by the map are left alone.
func (w *World) SetSize(width, height int) {
	w.wallsMu.Lock()
	defer w.wallsMu.Unlock()

	if w.width != width {
		w.width = width
		w.walls = replaceWall(w.walls, w.xAxisWall, NewWall(1, 0, width, Horizontal))
		w.xAxisWall = w.walls[len(w.walls)-1]
	}
	if w.height != height {
		w.height = height
		w.walls = replaceWall(w.walls, w.yAxisWall, NewWall(0, 1, height, Vertical))
		w.yAxisWall = w.walls[len(w.walls)-1]
	}
}

// replaceWall removes the first wall equal to old and appends next.
func replaceWall(walls []Wall, old, next Wall) []Wall {
	if i := slices.Index(walls, old); i >= 0 {
		walls = slices.Delete(walls, i, i+1)
	}
	return append(walls, next)
}

// Size returns the width and height of the world.
func (w *World) Size() (width, height int) {
	w.wallsMu.RLock()
	defer w.wallsMu.RUnlock()
	return w.width, w.height
}

// =============================================================================
// Robots
// =============================================================================

// AddRobot registers a robot and steps.
func (w *World) AddRobot(a Agent) {
	w.AddRobotInternal(a)
	w.step()
}

// AddRobotInternal registers a robot without stepping. Map loading uses it so that
// populating the world is not animated.
func (w *World) AddRobotInternal(a Agent) {
	w.robotsMu.Lock()
	defer w.robotsMu.Unlock()
	w.robots = append(w.robots, a)
}

// RemoveRobot deregisters a robot and steps.
func (w *World) RemoveRobot(a Agent) {
	w.robotsMu.Lock()
	if i := slices.Index(w.robots, a); i >= 0 {
		w.robots = slices.Delete(w.robots, i, i+1)
	}
	w.robotsMu.Unlock()
	w.step()
}

// IsNextToARobot reports whether a robot other than excluding stands at (x, y).
func (w *World) IsNextToARobot(excluding Agent, x, y int) bool {
	w.robotsMu.RLock()
	defer w.robotsMu.RUnlock()
	for _, r := range w.robots {
		if r != excluding && r.Location() == Loc(x, y) {
			return true
		}
	}
	return false
}

// Robots returns a copy of the robot registry.
func (w *World) Robots() []Agent {
	w.robotsMu.RLock()
	defer w.robotsMu.RUnlock()
	return slices.Clone(w.robots)
}
