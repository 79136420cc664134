// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a terminal screen painted with defStyle.
func New(defStyle tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, defStyle)
}

// NewWithScreen initializes s, which may be a tcell.SimulationScreen.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(defStyle)
	s.Clear()
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen. Later calls do nothing.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
}

// ChannelEvents forwards screen events to the returned channel from a
// helper goroutine until quit is closed.
func (t *TUI) ChannelEvents(quit <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go t.screen.ChannelEvents(events, quit)
	return events
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws the whole terminal, used after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// Screen provides direct access for the renderer.
func (t *TUI) Screen() tcell.Screen {
	return t.screen
}
