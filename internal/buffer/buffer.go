// internal/buffer/buffer.go
package buffer

import (
	"errors"
	"sort"
)

var (
	// ErrNoFilePath is returned by file operations on an untitled buffer.
	ErrNoFilePath = errors.New("no file path specified")
	// ErrNotUTF8 is returned when a file on disk is not valid UTF-8 text.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")
)

// Buffer is the read-only view of a text buffer used by the renderer,
// the highlighter and plugins.
type Buffer interface {
	Lines() []string
	Line(index int) string
	LineCount() int
	LineLength(index int) int
	Bytes() []byte
	FilePath() string
	IsModified() bool
	Version() uint64
}

// LineSet is a set of line indices.
type LineSet map[int]struct{}

// Has reports whether line is in the set.
func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Sorted returns the members in ascending order.
func (s LineSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for line := range s {
		out = append(out, line)
	}
	sort.Ints(out)
	return out
}

// diffLines returns the indices at which a and b differ, including indices
// present in only one of them.
func diffLines(a, b []string) LineSet {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	set := make(LineSet)
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			set[i] = struct{}{}
		}
	}
	return set
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
