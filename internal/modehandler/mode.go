package modehandler

import (
	"fmt"

	"github.com/bethropolis/zim/internal/config"
)

// Mode is the editor-wide input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeVisual
	ModeVisualLine
	ModeDelete
	ModeFileFinder
	ModeTokenSearch
	ModeHelp
	ModeWriteConfirm
	ModeReloadConfirm
	ModeFilenamePrompt
	ModeDiagnosticsPanel
	ModeSnake
)

// Modes lists every mode in declaration order.
var Modes = []Mode{
	ModeNormal, ModeInsert, ModeCommand, ModeVisual, ModeVisualLine,
	ModeDelete, ModeFileFinder, ModeTokenSearch, ModeHelp, ModeWriteConfirm,
	ModeReloadConfirm, ModeFilenamePrompt, ModeDiagnosticsPanel, ModeSnake,
}

var modeNames = map[Mode]string{
	ModeNormal:           "NORMAL",
	ModeInsert:           "INSERT",
	ModeCommand:          "COMMAND",
	ModeVisual:           "VISUAL",
	ModeVisualLine:       "VISUAL LINE",
	ModeDelete:           "DELETE",
	ModeFileFinder:       "FILE FINDER",
	ModeTokenSearch:      "TOKEN SEARCH",
	ModeHelp:             "HELP",
	ModeWriteConfirm:     "WRITE?",
	ModeReloadConfirm:    "RELOAD?",
	ModeFilenamePrompt:   "FILENAME",
	ModeDiagnosticsPanel: "DIAGNOSTICS",
	ModeSnake:            "SNAKE",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MODE(%d)", int(m))
}

// IsVisual reports whether m keeps a selection alive.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine
}

// tableName is the configured binding table consulted first in m. The
// confirmation prompts and the game only have fallback keys.
func (m Mode) tableName() string {
	switch m {
	case ModeNormal:
		return config.TableNormal
	case ModeInsert:
		return config.TableInsert
	case ModeCommand:
		return config.TableCommand
	case ModeVisual, ModeVisualLine:
		return config.TableVisual
	case ModeDelete:
		return config.TableDelete
	case ModeFileFinder:
		return config.TableFileFinder
	case ModeTokenSearch:
		return config.TableTokenSearch
	case ModeHelp:
		return config.TableHelp
	case ModeDiagnosticsPanel:
		return config.TableDiagnostics
	}
	return ""
}
