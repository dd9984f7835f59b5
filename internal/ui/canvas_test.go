package ui

import (
	"strings"
	"testing"

	"github.com/samdwyer/gokarel/internal/world"
)

func smallSnapshot() world.Snapshot {
	return world.Snapshot{
		Width:  3,
		Height: 3,
		Walls: []world.Wall{
			world.NewWall(1, 0, 3, world.Horizontal),
			world.NewWall(0, 1, 3, world.Vertical),
		},
		Beepers: []world.BeeperStack{
			{Location: world.Loc(2, 3), Count: 2},
			{Location: world.Loc(3, 2), Count: world.Unbounded},
			{Location: world.Loc(3, 3), Count: 12},
		},
		Robots: []world.RobotView{
			{ID: 1, Location: world.Loc(1, 1), Direction: world.East},
		},
	}
}

func TestDrawDimensions(t *testing.T) {
	c := Draw(smallSnapshot())
	if c.Width != 9 || c.Height != 8 {
		t.Fatalf("canvas = %dx%d, want 9x8", c.Width, c.Height)
	}
	if lines := strings.Count(c.String(), "\n"); lines != c.Height {
		t.Errorf("String() has %d lines, want %d", lines, c.Height)
	}
}

func TestDrawPlacesObjects(t *testing.T) {
	c := Draw(smallSnapshot())

	tests := []struct {
		name     string
		col, row int
		want     rune
		kind     int
	}{
		{"robot at (1, 1)", 2, 5, '>', kindRobot},
		{"two beepers at (2, 3)", 4, 1, '2', kindBeeper},
		{"unbounded stack at (3, 2)", 6, 3, '∞', kindBeeper},
		{"large stack at (3, 3)", 6, 1, '*', kindBeeper},
		{"empty cell (2, 2)", 4, 3, glyphEmpty, kindFloor},
		{"floor boundary", 4, 6, glyphHWall, kindWall},
		{"west boundary", 1, 3, glyphVWall, kindWall},
		{"boundary corner", 1, 6, glyphCorner, kindWall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Runes[tt.row][tt.col]; got != tt.want {
				t.Errorf("rune = %q, want %q", got, tt.want)
			}
			if got := c.Kinds[tt.row][tt.col]; got != tt.kind {
				t.Errorf("kind = %d, want %d", got, tt.kind)
			}
		})
	}
}

func TestDrawRobotGlyphs(t *testing.T) {
	want := map[world.Direction]rune{
		world.North: '^',
		world.East:  '>',
		world.South: 'v',
		world.West:  '<',
	}
	for dir, glyph := range want {
		s := world.Snapshot{Width: 2, Height: 2, Robots: []world.RobotView{{Location: world.Loc(2, 2), Direction: dir}}}
		if got := Draw(s).Runes[1][4]; got != glyph {
			t.Errorf("%v drawn as %q, want %q", dir, got, glyph)
		}
	}
}

func TestDrawClipsOutsideObjects(t *testing.T) {
	s := world.Snapshot{
		Width:   2,
		Height:  2,
		Beepers: []world.BeeperStack{{Location: world.Loc(40, 40), Count: 1}},
		Walls:   []world.Wall{world.NewWall(-5, 9, 3, world.Vertical)},
	}
	// Must not panic.
	c := Draw(s)
	if strings.ContainsRune(c.String(), '1') {
		t.Error("beeper outside the world was drawn")
	}
}
