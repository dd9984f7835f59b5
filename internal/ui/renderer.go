package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gokarel/internal/game"
	"github.com/samdwyer/gokarel/internal/world"
)

// Renderer draws every step of a simulation to the terminal. It implements
// game.Observer.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// OnStep redraws the world after a step.
func (r *Renderer) OnStep(ev game.StepEvent) {
	r.Render(ev.Snapshot, fmt.Sprintf("step %d  %s", ev.Step, ev.State))
}

// OnDeath redraws the frozen world with the reason it died.
func (r *Renderer) OnDeath(reason string, snapshot world.Snapshot) {
	r.Render(snapshot, "dead: "+reason)
}

// Render draws the snapshot and a status line beneath it.
func (r *Renderer) Render(s world.Snapshot, status string) {
	r.screen.Clear()

	canvas := Draw(s)
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r.screen.SetContent(col, row, canvas.Runes[row][col], styleFor(canvas.Kinds[row][col]))
		}
	}

	r.RenderMessage(status, canvas.Height+1)
	r.RenderMessage("q / esc to quit", canvas.Height+2)

	r.screen.Show()
}

// styleFor returns the appropriate style for a canvas cell kind.
func styleFor(kind int) tcell.Style {
	switch kind {
	case kindWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkRed).Bold(true)
	case kindFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case kindBeeper:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	case kindRobot:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
