package entity

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/samdwyer/gokarel/internal/world"
)

// testArena is a minimal clock: a dead flag and a step counter.
type testArena struct {
	dead   atomic.Bool
	steps  atomic.Int64
	mu     sync.Mutex
	reason string
}

func (a *testArena) IsDead() bool { return a.dead.Load() }
func (a *testArena) Step()        { a.steps.Add(1) }
func (a *testArena) Die(reason string) {
	if a.dead.CompareAndSwap(false, true) {
		a.mu.Lock()
		a.reason = reason
		a.mu.Unlock()
	}
}

func newTestWorld() (*world.World, *testArena) {
	arena := &testArena{}
	return world.New(10, 10, arena), arena
}

func place(w *world.World, arena *testArena, id, x, y int, dir world.Direction, beepers int) *Robot {
	r := New(id, w, arena, world.Loc(x, y), dir, beepers)
	w.AddRobotInternal(r)
	return r
}

func TestMoveAndTurn(t *testing.T) {
	w, arena := newTestWorld()
	r := place(w, arena, 1, 1, 1, world.East, 0)

	r.Move()
	if got := r.Location(); got != world.Loc(2, 1) {
		t.Fatalf("after Move location = %v, want (2, 1)", got)
	}

	r.TurnLeft()
	if !r.FacingNorth() {
		t.Errorf("after TurnLeft facing %v, want NORTH", r.Direction())
	}
	r.Move()
	if got := r.Location(); got != world.Loc(2, 2) {
		t.Errorf("after second Move location = %v, want (2, 2)", got)
	}

	r.TurnRight()
	r.TurnRight()
	if !r.FacingSouth() {
		t.Errorf("after two right turns facing %v, want SOUTH", r.Direction())
	}

	if got := arena.steps.Load(); got != 5 {
		t.Errorf("steps = %d, want 5", got)
	}
	if arena.IsDead() {
		t.Errorf("simulation died: %s", arena.reason)
	}
}

func TestMoveIntoWallKillsEveryone(t *testing.T) {
	w, arena := newTestWorld()
	r1 := place(w, arena, 1, 1, 1, world.South, 0)
	r2 := place(w, arena, 2, 5, 5, world.North, 0)

	r1.Move()

	if !arena.IsDead() {
		t.Fatal("walking into the boundary should kill the simulation")
	}
	if got := r1.Location(); got != world.Loc(1, 1) {
		t.Errorf("robot moved to %v despite the wall", got)
	}
	if arena.reason != "tried to walk SOUTH through a wall at (1, 1)" {
		t.Errorf("reason = %q", arena.reason)
	}

	steps := arena.steps.Load()
	r2.Move()
	r2.TurnLeft()
	if got := r2.Location(); got != world.Loc(5, 5) {
		t.Errorf("second robot moved to %v after death", got)
	}
	if !r2.FacingNorth() {
		t.Error("second robot turned after death")
	}
	if arena.steps.Load() != steps {
		t.Error("actions after death must not step")
	}

	// Sensors keep working.
	if !r2.FrontIsClear() {
		t.Error("sensors should still answer after death")
	}
}

func TestPickBeeperFromEmptyCell(t *testing.T) {
	w, arena := newTestWorld()
	r := place(w, arena, 1, 3, 3, world.East, 2)

	r.PickBeeper()

	if !arena.IsDead() {
		t.Fatal("picking from an empty cell should kill the simulation")
	}
	if r.Beepers() != 2 {
		t.Errorf("inventory = %d, want 2", r.Beepers())
	}
	if w.CheckBeepers(3, 3) {
		t.Error("a stack appeared at (3, 3)")
	}
	if arena.reason != "trying to pick non-existent beepers" {
		t.Errorf("reason = %q", arena.reason)
	}
}

func TestPutBeeperUntilEmpty(t *testing.T) {
	w, arena := newTestWorld()
	r := place(w, arena, 1, 1, 1, world.East, 5)

	for i := 0; i < 5; i++ {
		r.PutBeeper()
	}
	if r.Beepers() != 0 {
		t.Fatalf("inventory = %d, want 0", r.Beepers())
	}
	b, ok := w.BeepersAt(1, 1)
	if !ok || b.Count != 5 {
		t.Fatalf("stack = %+v, %v; want 5 beepers", b, ok)
	}
	if arena.IsDead() {
		t.Fatal("no action so far was illegal")
	}

	r.PutBeeper()
	if !arena.IsDead() {
		t.Fatal("putting with an empty inventory should kill the simulation")
	}
	if r.Beepers() != 0 {
		t.Errorf("inventory = %d, want 0", r.Beepers())
	}
	if b, _ := w.BeepersAt(1, 1); b.Count != 5 {
		t.Errorf("stack count = %d, want 5", b.Count)
	}
}

func TestPickBeeperMovesStackIntoInventory(t *testing.T) {
	w, arena := newTestWorld()
	w.PutBeepers(2, 2, 2)
	r := place(w, arena, 1, 2, 2, world.East, 0)

	r.PickBeeper()
	r.PickBeeper()

	if r.Beepers() != 2 {
		t.Errorf("inventory = %d, want 2", r.Beepers())
	}
	if r.NextToABeeper() {
		t.Error("cell should be empty")
	}
	if arena.IsDead() {
		t.Errorf("simulation died: %s", arena.reason)
	}
}

func TestPickLastBeeperEmptiesCell(t *testing.T) {
	w, arena := newTestWorld()
	w.PutBeepers(6, 6, 1)
	r := place(w, arena, 1, 6, 6, world.West, 0)

	r.PickBeeper()

	if arena.IsDead() {
		t.Fatalf("simulation died: %s", arena.reason)
	}
	if b, ok := w.BeepersAt(6, 6); ok {
		t.Errorf("stack = %+v, want none", b)
	}
	if r.NextToABeeper() {
		t.Error("NextToABeeper after taking the last beeper")
	}
	if r.Beepers() != 1 {
		t.Errorf("inventory = %d, want 1", r.Beepers())
	}

	r.PickBeeper()
	if !arena.IsDead() {
		t.Error("second pick from the emptied cell should kill the simulation")
	}
}

func TestUnboundedInventory(t *testing.T) {
	w, arena := newTestWorld()
	w.PutBeepers(4, 4, world.Unbounded)
	r := place(w, arena, 1, 4, 4, world.East, world.Unbounded)

	for i := 0; i < 3; i++ {
		r.PutBeeper()
		r.PickBeeper()
	}
	if r.Beepers() != world.Unbounded {
		t.Errorf("inventory = %d, want Unbounded", r.Beepers())
	}
	if b, _ := w.BeepersAt(4, 4); !b.Unbounded() {
		t.Errorf("stack = %+v, want Unbounded", b)
	}
	if !r.HasBeepers() {
		t.Error("an unbounded inventory always has beepers")
	}
}

func TestNewClampsNegativeInventory(t *testing.T) {
	w, arena := newTestWorld()
	r := New(1, w, arena, world.Loc(1, 1), world.East, -3)
	if r.Beepers() != 0 {
		t.Errorf("inventory = %d, want 0", r.Beepers())
	}
	if r.HasBeepers() {
		t.Error("clamped robot should have no beepers")
	}
}

func TestFrontIsClearAgainstHorizontalWall(t *testing.T) {
	w, arena := newTestWorld()
	w.AddWall(world.NewWall(3, 1, 2, world.Horizontal))
	r := place(w, arena, 1, 3, 1, world.North, 0)

	if r.FrontIsClear() {
		t.Error("facing NORTH under the wall, front should be blocked")
	}

	r.TurnRight()
	if !r.FacingEast() {
		t.Fatalf("facing %v, want EAST", r.Direction())
	}
	if !r.FrontIsClear() {
		t.Error("facing EAST there is no vertical wall")
	}
}

func TestRelativeSensors(t *testing.T) {
	w, arena := newTestWorld()
	// Robot at (1, 1) facing north: the boundary is to its left (west) and behind (south).
	r := place(w, arena, 1, 1, 1, world.North, 0)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"front", r.FrontIsClear(), true},
		{"left", r.LeftIsClear(), false},
		{"right", r.RightIsClear(), true},
		{"back", r.BackIsClear(), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%sIsClear() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestSouthAndWestProbeThePrecedingCell(t *testing.T) {
	w, arena := newTestWorld()
	// Wall on the north edge of (5, 4) and the east edge of (4, 5).
	w.AddWall(world.NewWall(5, 4, 1, world.Horizontal))
	w.AddWall(world.NewWall(4, 5, 1, world.Vertical))

	south := place(w, arena, 1, 5, 5, world.South, 0)
	west := place(w, arena, 2, 5, 5, world.West, 0)

	if south.FrontIsClear() {
		t.Error("facing SOUTH from (5, 5) should see the wall above (5, 4)")
	}
	if west.FrontIsClear() {
		t.Error("facing WEST from (5, 5) should see the wall east of (4, 5)")
	}
	if !south.BackIsClear() || !west.BackIsClear() {
		t.Error("nothing blocks north or east of (5, 5)")
	}
}

func TestNextToARobot(t *testing.T) {
	w, arena := newTestWorld()
	a := place(w, arena, 1, 2, 2, world.East, 0)
	b := place(w, arena, 2, 3, 2, world.West, 0)

	if a.NextToARobot() {
		t.Error("robots on different cells are not next to each other")
	}

	a.Move()
	if !a.NextToARobot() || !b.NextToARobot() {
		t.Error("robots on the same cell should see each other")
	}
	if !a.NextTo(b) {
		t.Error("NextTo should agree with NextToARobot")
	}
}

func TestExplode(t *testing.T) {
	w, arena := newTestWorld()
	a := place(w, arena, 1, 2, 2, world.East, 0)
	b := place(w, arena, 2, 2, 2, world.East, 0)

	a.Explode()

	if len(w.Robots()) != 1 {
		t.Fatalf("robots = %d, want 1", len(w.Robots()))
	}
	if b.NextToARobot() {
		t.Error("exploded robot is still registered")
	}
	if arena.steps.Load() != 1 {
		t.Errorf("steps = %d, want 1", arena.steps.Load())
	}
	if !a.Halted() {
		t.Error("exploded robot should be halted")
	}

	a.Move()
	if a.Location() != world.Loc(2, 2) {
		t.Error("exploded robot must not move")
	}
	if b.Halted() {
		t.Error("explosion is not a simulation death")
	}
}

func TestConcurrentRobots(t *testing.T) {
	w, arena := newTestWorld()
	w.PutBeepers(5, 5, 1000)

	var wg sync.WaitGroup
	robots := make([]*Robot, 4)
	for i := range robots {
		robots[i] = place(w, arena, i+1, 5, 5, world.East, 0)
		wg.Add(1)
		go func(r *Robot) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				r.PickBeeper()
				r.TurnLeft()
			}
		}(robots[i])
	}
	wg.Wait()

	if arena.IsDead() {
		t.Fatalf("simulation died: %s", arena.reason)
	}
	total := 0
	for _, r := range robots {
		total += r.Beepers()
		if !r.FacingNorth() {
			t.Errorf("robot %d facing %v after 25 left turns", r.ID(), r.Direction())
		}
	}
	if total != 100 {
		t.Errorf("robots hold %d beepers, want 100", total)
	}
	if b, _ := w.BeepersAt(5, 5); b.Count != 900 {
		t.Errorf("stack = %d, want 900", b.Count)
	}
}
