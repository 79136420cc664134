// internal/theme/theme.go
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}
	if defStyle, ok := t.Styles["Default"]; ok {
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// ParseColor reads "#rrggbb", a tcell colour name, "reset" or "default".
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
	}
	return c, nil
}

func colorOr(s string, fallback tcell.Color) tcell.Color {
	c, err := ParseColor(s)
	if err != nil {
		logger.Warnf("Theme: %v", err)
		return fallback
	}
	return c
}

// Syntax palette.
var (
	paletteComment = tcell.NewHexColor(0x5c6370)
	paletteOrange  = tcell.NewHexColor(0xd19a66)
	paletteYellow  = tcell.NewHexColor(0xe5c07b)
	paletteGreen   = tcell.NewHexColor(0x98c379)
	paletteCyan    = tcell.NewHexColor(0x56b6c2)
	paletteBlue    = tcell.NewHexColor(0x61afef)
)

// FromConfig builds the UI styles from cfg plus the fixed syntax palette.
func FromConfig(cfg config.ThemeConfig) *Theme {
	bg := colorOr(cfg.Background, tcell.ColorReset)
	fg := colorOr(cfg.Foreground, tcell.ColorWhite)
	selection := colorOr(cfg.Selection, tcell.ColorNavy)
	cursor := colorOr(cfg.Cursor, tcell.ColorWhite)
	lineNumber := colorOr(cfg.LineNumber, tcell.ColorGray)
	statusBg := colorOr(cfg.StatusLineBg, tcell.ColorDarkGray)
	statusFg := colorOr(cfg.StatusLineFg, tcell.ColorWhite)
	modified := colorOr(cfg.Modified, tcell.ColorYellow)
	diagError := colorOr(cfg.DiagnosticError, tcell.ColorRed)
	diagWarning := colorOr(cfg.DiagnosticWarning, tcell.ColorOrange)

	base := tcell.StyleDefault.Background(bg).Foreground(fg)
	status := tcell.StyleDefault.Background(statusBg).Foreground(statusFg)

	return &Theme{
		Name: "zim",
		Styles: map[string]tcell.Style{
			// UI
			"Default":           base,
			"Selection":         base.Background(selection),
			"Cursor":            base.Background(cursor).Foreground(bg),
			"LineNumber":        base.Foreground(lineNumber),
			"LineNumberActive":  base.Foreground(fg).Bold(true),
			"GutterModified":    base.Foreground(modified),
			"GutterDiff":        base.Foreground(diagWarning).Bold(true),
			"DiagnosticError":   base.Foreground(diagError).Bold(true),
			"DiagnosticWarning": base.Foreground(diagWarning),
			"DiagnosticInfo":    base.Foreground(paletteCyan),
			"SearchHighlight":   base.Background(paletteOrange).Foreground(tcell.ColorBlack),
			"StatusBar":         status,
			"StatusBarModified": status.Foreground(modified),
			"StatusBarMessage":  status.Bold(true),
			"StatusBarMode":     status.Reverse(true).Bold(true),
			"StatusBarError":    status.Foreground(diagError).Bold(true),
			"StatusBarWarning":  status.Foreground(diagWarning),
			"TabBar":            status,
			"TabBarActive":      base.Bold(true).Underline(true),
			"Overlay":           status,
			"OverlaySelected":   status.Reverse(true),
			"OverlayMatch":      status.Foreground(paletteYellow).Bold(true),
			"SnakeBody":         base.Foreground(paletteGreen),
			"SnakeHead":         base.Foreground(paletteGreen).Bold(true),
			"SnakeFood":         base.Foreground(diagError),

			// Syntax
			"keyword":   base.Foreground(paletteBlue).Bold(true),
			"string":    base.Foreground(paletteGreen),
			"comment":   base.Foreground(paletteComment).Italic(true),
			"number":    base.Foreground(paletteOrange),
			"type":      base.Foreground(paletteCyan),
			"function":  base.Foreground(paletteYellow),
			"constant":  base.Foreground(paletteOrange),
			"namespace": base.Foreground(paletteCyan),
			"property":  base,
		},
	}
}
