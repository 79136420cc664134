// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/types"
)

// Styles defines the appearance of the status bar.
type Styles struct {
	Default  tcell.Style
	Modified tcell.Style
	Message  tcell.Style
	Mode     tcell.Style
	Error    tcell.Style
	Warning  tcell.Style
}

// DefaultStyles provides a blue bar for use without a theme.
func DefaultStyles() Styles {
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue)
	return Styles{
		Default:  base,
		Modified: base.Foreground(tcell.ColorYellow).Bold(true),
		Message:  base.Foreground(tcell.ColorWhite).Bold(true),
		Mode:     base.Reverse(true).Bold(true),
		Error:    base.Foreground(tcell.ColorRed).Bold(true),
		Warning:  base.Foreground(tcell.ColorOrange),
	}
}

// StatusBar is the UI component for the bottom status line.
type StatusBar struct {
	styles  Styles
	timeout time.Duration
	now     func() time.Time
	mu      sync.Mutex

	filePath   string
	cursorPos  types.Position
	isModified bool
	editorMode string
	tabIndex   int
	tabCount   int
	errors     int
	warnings   int

	// prompt replaces the whole line while set (command line, confirmations).
	prompt string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a status bar. A zero timeout means config.MessageTimeout.
func New(styles Styles, timeout time.Duration) *StatusBar {
	if timeout <= 0 {
		timeout = config.MessageTimeout
	}
	return &StatusBar{styles: styles, timeout: timeout, now: time.Now, tabCount: 1}
}

// SetStyles replaces the styles, e.g. after the theme changed.
func (sb *StatusBar) SetStyles(styles Styles) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.styles = styles
}

// SetFileInfo updates the file path and modified indicator.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed mode label.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetTabInfo sets the 0-based current tab and the tab count.
func (sb *StatusBar) SetTabInfo(index, count int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tabIndex = index
	sb.tabCount = count
}

func (sb *StatusBar) SetDiagnosticCounts(errors, warnings int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.errors = errors
	sb.warnings = warnings
}

// SetPrompt shows text in place of the normal line until ClearPrompt.
func (sb *StatusBar) SetPrompt(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = text
}

func (sb *StatusBar) ClearPrompt() {
	sb.SetPrompt("")
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, expiring it if stale.
func (sb *StatusBar) Message() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.activeMessage()
}

// activeMessage must be called with mu held.
func (sb *StatusBar) activeMessage() (string, bool) {
	if sb.tempMessageTime.IsZero() {
		return "", false
	}
	if sb.now().Sub(sb.tempMessageTime) > sb.timeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return "", false
	}
	return sb.tempMessage, true
}

// Text returns the line that Draw would render and its style.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompt != "" {
		return sb.prompt, sb.styles.Message
	}
	if msg, ok := sb.activeMessage(); ok {
		return msg, sb.styles.Message
	}
	return sb.defaultText(), sb.styles.Default
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [+]"
	}
	modeIndicator := ""
	if sb.editorMode != "" {
		modeIndicator = fmt.Sprintf(" -- %s --", sb.editorMode)
	}
	tabIndicator := ""
	if sb.tabCount > 1 {
		tabIndicator = fmt.Sprintf(" [%d/%d]", sb.tabIndex+1, sb.tabCount)
	}
	diagIndicator := ""
	if sb.errors > 0 || sb.warnings > 0 {
		diagIndicator = fmt.Sprintf(" E:%d W:%d", sb.errors, sb.warnings)
	}
	return fmt.Sprintf("%s%s %s%s -- Ln %d, Col %d%s",
		modeIndicator, tabIndicator, fPath, modifiedIndicator,
		sb.cursorPos.Line+1, sb.cursorPos.Col+1, diagIndicator)
}

// Draw renders the status bar on row y using grapheme widths.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 || y < 0 {
		return
	}
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	DrawText(screen, 0, y, width, text, style)
}

// DrawText draws text from x, clipped to maxWidth cells, and returns the
// column after the last cluster drawn.
func DrawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > x+maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
	return currentX
}
