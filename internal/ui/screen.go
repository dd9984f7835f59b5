// Package ui provides a terminal observer for the simulation using tcell.
package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// WatchQuit polls terminal events until the user presses q, Escape or Ctrl-C,
// then calls quit. It returns when ctx is done or the screen is closed.
func (s *Screen) WatchQuit(ctx context.Context, quit func()) {
	go func() {
		<-ctx.Done()
		// Wakes PollEvent so the loop below can exit.
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		ev := s.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				quit()
				return
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}
