// internal/buffer/slice_buffer.go
package buffer

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/zim/internal/core/history"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

// SliceBuffer stores a file as a slice of lines and owns its undo history.
// It always holds at least one line.
type SliceBuffer struct {
	lines    []string
	baseline []string // content as last loaded or saved
	filePath string
	modified bool

	modifiedCache LineSet // nil when stale

	anchor *types.Position
	syntax any
	// version increments on every content change.
	version uint64

	history *history.Log
}

var _ Buffer = (*SliceBuffer)(nil)

// NewSliceBuffer creates an empty buffer with the default history size.
func NewSliceBuffer() *SliceBuffer {
	return NewSliceBufferWithHistory(history.DefaultMaxHistory)
}

// NewSliceBufferWithHistory creates an empty buffer whose history keeps at
// most maxHistory actions.
func NewSliceBufferWithHistory(maxHistory int) *SliceBuffer {
	return &SliceBuffer{
		lines:    []string{""},
		baseline: []string{""},
		history:  history.New(maxHistory),
	}
}

// FromLines creates an unmodified buffer holding lines.
func FromLines(lines ...string) *SliceBuffer {
	sb := NewSliceBuffer()
	if len(lines) > 0 {
		sb.lines = cloneLines(lines)
		sb.baseline = cloneLines(lines)
	}
	return sb
}

// Load reads a file into the buffer, replacing its content. The new content
// becomes the saved baseline and the undo history is cleared.
func (sb *SliceBuffer) Load(filePath string) error {
	lines, err := readLines(filePath)
	if err != nil {
		return err
	}
	sb.lines = lines
	sb.baseline = cloneLines(lines)
	sb.filePath = filePath
	sb.modified = false
	sb.anchor = nil
	sb.modifiedCache = nil
	sb.version++
	sb.history.Clear()
	logger.Debugf("Buffer: Loaded %d lines from '%s'", len(lines), filePath)
	return nil
}

// Reload re-reads the stored path. The swap is recorded as one undoable
// action; at is used as the cursor on both sides of it.
func (sb *SliceBuffer) Reload(at types.Position) error {
	if sb.filePath == "" {
		return ErrNoFilePath
	}
	lines, err := readLines(sb.filePath)
	if err != nil {
		return err
	}
	old := sb.lines
	sb.lines = lines
	sb.anchor = nil
	sb.touch()
	sb.record(history.SetContent{OldLines: old, NewLines: cloneLines(lines)}, at, at)

	sb.baseline = cloneLines(lines)
	sb.modified = false
	sb.modifiedCache = nil
	logger.Debugf("Buffer: Reloaded '%s' (%d lines)", sb.filePath, len(lines))
	return nil
}

// Save writes the buffer to filePath, or to the stored path when filePath is
// empty. On failure the buffer is left untouched.
func (sb *SliceBuffer) Save(filePath string) error {
	path := filePath
	if path == "" {
		path = sb.filePath
	}
	if path == "" {
		return ErrNoFilePath
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	sb.baseline = cloneLines(sb.lines)
	sb.modifiedCache = nil
	logger.Debugf("Buffer: Saved %d lines to '%s'", len(sb.lines), path)
	return nil
}

// DiffWithDisk returns the lines that differ between the buffer and the file
// at its path. It never changes the buffer.
func (sb *SliceBuffer) DiffWithDisk() (LineSet, error) {
	if sb.filePath == "" {
		return nil, ErrNoFilePath
	}
	disk, err := readLines(sb.filePath)
	if err != nil {
		return nil, err
	}
	return diffLines(sb.lines, disk), nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to load file '%s': %w", path, ErrNotUTF8)
	}
	// A trailing newline yields a final empty line, so Save round-trips.
	return strings.Split(string(data), "\n"), nil
}

func (sb *SliceBuffer) Lines() []string {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the line at index, or "" when out of range.
func (sb *SliceBuffer) Line(index int) string {
	if !sb.validLine(index) {
		return ""
	}
	return sb.lines[index]
}

// LineLength returns the rune count of the line at index.
func (sb *SliceBuffer) LineLength(index int) int {
	if !sb.validLine(index) {
		return 0
	}
	return utf8.RuneCountInString(sb.lines[index])
}

// Bytes returns the content joined by newlines.
func (sb *SliceBuffer) Bytes() []byte {
	return []byte(strings.Join(sb.lines, "\n"))
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// SetFilePath names an untitled buffer without touching the disk.
func (sb *SliceBuffer) SetFilePath(path string) {
	sb.filePath = path
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) Version() uint64 {
	return sb.version
}

// Syntax returns the handle stored by the highlighter.
func (sb *SliceBuffer) Syntax() any {
	return sb.syntax
}

// SetSyntax stores an opaque highlighter handle.
func (sb *SliceBuffer) SetSyntax(handle any) {
	sb.syntax = handle
}

func (sb *SliceBuffer) History() *history.Log {
	return sb.history
}

// ModifiedLines returns the lines that differ from the saved baseline. The
// returned set must not be modified.
func (sb *SliceBuffer) ModifiedLines() LineSet {
	if sb.modifiedCache == nil {
		sb.modifiedCache = diffLines(sb.lines, sb.baseline)
	}
	return sb.modifiedCache
}

func (sb *SliceBuffer) IsLineModified(line int) bool {
	return sb.ModifiedLines().Has(line)
}

func (sb *SliceBuffer) validLine(index int) bool {
	return index >= 0 && index < len(sb.lines)
}

// touch marks a content change.
func (sb *SliceBuffer) touch() {
	sb.modified = true
	sb.modifiedCache = nil
	sb.version++
}

func (sb *SliceBuffer) record(edit history.Edit, before, after types.Position) {
	sb.history.Push(history.EditorAction{Edit: edit, CursorBefore: before, CursorAfter: after})
}
