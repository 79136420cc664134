// Package diagnostics collects compiler and linter messages per line.
package diagnostics

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Span is a half-open column range on one line. Line and columns are
// zero-based.
type Span struct {
	Line  int
	Start int
	End   int
}

// Contains reports whether (line, col) falls inside the span.
func (s Span) Contains(line, col int) bool {
	return line == s.Line && col >= s.Start && col < s.End
}

// Diagnostic is a single message.
type Diagnostic struct {
	Message  string
	Severity Severity
	Span     Span
	FilePath string
	Source   string // tool that produced it, e.g. "go vet"
}

// String renders "path:line:col: severity: message" with one-based numbers.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.FilePath, d.Span.Line+1, d.Span.Start+1, d.Severity, d.Message)
}

// Collection holds diagnostics in insertion order.
type Collection struct {
	items  []Diagnostic
	byLine map[int][]int
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byLine: make(map[int][]int)}
}

// Add appends d.
func (c *Collection) Add(d Diagnostic) {
	if c.byLine == nil {
		c.byLine = make(map[int][]int)
	}
	c.byLine[d.Span.Line] = append(c.byLine[d.Span.Line], len(c.items))
	c.items = append(c.items, d)
}

// Clear removes everything.
func (c *Collection) Clear() {
	c.items = nil
	c.byLine = make(map[int][]int)
}

// Len returns the number of diagnostics.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// ForLine returns the diagnostics on line.
func (c *Collection) ForLine(line int) []Diagnostic {
	if c == nil {
		return nil
	}
	idx := c.byLine[line]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(idx))
	for i, j := range idx {
		out[i] = c.items[j]
	}
	return out
}

// All returns every diagnostic in insertion order.
func (c *Collection) All() []Diagnostic {
	if c == nil {
		return nil
	}
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Filtered returns the diagnostics with severity sev.
func (c *Collection) Filtered(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.All() {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// ErrorCount returns the number of errors.
func (c *Collection) ErrorCount() int { return len(c.Filtered(SeverityError)) }

// WarningCount returns the number of warnings.
func (c *Collection) WarningCount() int { return len(c.Filtered(SeverityWarning)) }

// Lines returns the lines carrying diagnostics, ascending.
func (c *Collection) Lines() []int {
	if c == nil {
		return nil
	}
	lines := make([]int, 0, len(c.byLine))
	for line := range c.byLine {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// NextLine returns the first diagnostic line after from, wrapping to the
// first one. ok is false when the collection is empty.
func (c *Collection) NextLine(from int) (int, bool) {
	lines := c.Lines()
	if len(lines) == 0 {
		return 0, false
	}
	for _, line := range lines {
		if line > from {
			return line, true
		}
	}
	return lines[0], true
}

// PrevLine returns the last diagnostic line before from, wrapping to the
// last one.
func (c *Collection) PrevLine(from int) (int, bool) {
	lines := c.Lines()
	if len(lines) == 0 {
		return 0, false
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] < from {
			return lines[i], true
		}
	}
	return lines[len(lines)-1], true
}

// ForFile returns the diagnostics whose path names the same file as path.
func (c *Collection) ForFile(path string) *Collection {
	out := NewCollection()
	if path == "" {
		return out
	}
	want := canonical(path)
	for _, d := range c.All() {
		if canonical(d.FilePath) == want {
			out.Add(d)
		}
	}
	return out
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}
