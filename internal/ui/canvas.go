package ui

import (
	"github.com/samdwyer/gokarel/internal/world"
)

// Glyphs used on the canvas.
const (
	glyphEmpty     = '·'
	glyphHWall     = '─'
	glyphVWall     = '│'
	glyphCorner    = '┼'
	glyphManyBeeps = '*'
	glyphInfinity  = '∞'
)

// Cell kinds, used to pick a style.
const (
	kindBlank = iota
	kindFloor
	kindWall
	kindBeeper
	kindRobot
)

// Canvas is a character grid of a world snapshot. World y grows upwards and
// canvas rows grow downwards; each world cell sits on even columns and odd rows
// with walls drawn in the gaps between them.
type Canvas struct {
	Width, Height int
	Runes         [][]rune
	Kinds         [][]int
}

// cellPos maps a world cell to its canvas column and row.
func cellPos(loc world.Location, worldHeight int) (col, row int) {
	return 2 * loc.X, 2*(worldHeight-loc.Y) + 1
}

// Draw lays out a snapshot. Anything outside the canvas is clipped.
func Draw(s world.Snapshot) *Canvas {
	c := &Canvas{
		Width:  2*s.Width + 3,
		Height: 2*s.Height + 2,
	}
	c.Runes = make([][]rune, c.Height)
	c.Kinds = make([][]int, c.Height)
	for row := range c.Runes {
		c.Runes[row] = make([]rune, c.Width)
		c.Kinds[row] = make([]int, c.Width)
		for col := range c.Runes[row] {
			c.Runes[row][col] = ' '
		}
	}

	for y := 1; y <= s.Height; y++ {
		for x := 1; x <= s.Width; x++ {
			col, row := cellPos(world.Loc(x, y), s.Height)
			c.set(col, row, glyphEmpty, kindFloor)
		}
	}

	for _, w := range s.Walls {
		c.drawWall(w, s.Height)
	}

	for _, b := range s.Beepers {
		col, row := cellPos(b.Location, s.Height)
		c.set(col, row, beeperGlyph(b.Count), kindBeeper)
	}

	for _, r := range s.Robots {
		col, row := cellPos(r.Location, s.Height)
		c.set(col, row, robotGlyph(r.Direction), kindRobot)
	}

	return c
}

func (c *Canvas) set(col, row int, r rune, kind int) {
	if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
		return
	}
	if c.Kinds[row][col] == kindWall && kind == kindWall && c.Runes[row][col] != r {
		r = glyphCorner
	}
	c.Runes[row][col] = r
	c.Kinds[row][col] = kind
}

// drawWall draws each blocked cell boundary of w. A horizontal wall at row y sits
// between canvas rows of y and y+1; a vertical wall at column x sits between
// canvas columns of x and x+1.
func (c *Canvas) drawWall(w world.Wall, worldHeight int) {
	for i := 0; i < w.Length; i++ {
		if w.Orientation == world.Horizontal {
			col, row := cellPos(world.Loc(w.X+i, w.Y), worldHeight)
			c.set(col-1, row-1, glyphHWall, kindWall)
			c.set(col, row-1, glyphHWall, kindWall)
			c.set(col+1, row-1, glyphHWall, kindWall)
			continue
		}
		col, row := cellPos(world.Loc(w.X, w.Y+i), worldHeight)
		c.set(col+1, row-1, glyphVWall, kindWall)
		c.set(col+1, row, glyphVWall, kindWall)
		c.set(col+1, row+1, glyphVWall, kindWall)
	}
}

func beeperGlyph(count int) rune {
	switch {
	case count == world.Unbounded:
		return glyphInfinity
	case count >= 1 && count <= 9:
		return rune('0' + count)
	default:
		return glyphManyBeeps
	}
}

func robotGlyph(d world.Direction) rune {
	switch d {
	case world.North:
		return '^'
	case world.East:
		return '>'
	case world.South:
		return 'v'
	default:
		return '<'
	}
}

// String renders the canvas as lines of text.
func (c *Canvas) String() string {
	out := make([]rune, 0, (c.Width+1)*c.Height)
	for _, row := range c.Runes {
		out = append(out, row...)
		out = append(out, '\n')
	}
	return string(out)
}
