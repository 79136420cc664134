// Package search implements the project-wide token search.
package search

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/zim/internal/finder"
	"github.com/bethropolis/zim/internal/logger"
)

const (
	// MaxResults caps a project search.
	MaxResults = 500
	// maxFileSize skips files too large to be worth scanning.
	maxFileSize = 2 << 20
)

// LineMatch is a hit inside a single buffer, in rune columns.
type LineMatch struct {
	Line     int
	StartCol int
	EndCol   int
}

// compile builds a case-insensitive literal pattern.
func compile(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

// FindInLines returns every case-insensitive occurrence of query.
func FindInLines(lines []string, query string) []LineMatch {
	if query == "" {
		return nil
	}
	return findInLines(compile(query), lines, 0)
}

func findInLines(re *regexp.Regexp, lines []string, limit int) []LineMatch {
	var out []LineMatch
	for i, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			out = append(out, LineMatch{
				Line:     i,
				StartCol: utf8.RuneCountInString(line[:loc[0]]),
				EndCol:   utf8.RuneCountInString(line[:loc[1]]),
			})
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// Result is a hit in a project file. Line and Col are zero-based.
type Result struct {
	Path string // relative to the search root
	Line int
	Col  int
	Text string // the whole line, trimmed
}

// Search holds the query, the results and the selection.
type Search struct {
	root     string
	query    string
	results  []Result
	selected int
}

// New creates a search over the files under root.
func New(root string) *Search {
	return &Search{root: root}
}

// Reset clears the query and results.
func (s *Search) Reset() {
	s.query = ""
	s.results = nil
	s.selected = 0
}

// AddChar appends r to the query.
func (s *Search) AddChar(r rune) { s.query += string(r) }

// RemoveChar drops the last rune of the query.
func (s *Search) RemoveChar() {
	if s.query == "" {
		return
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
}

// Run searches every listed file synchronously.
func (s *Search) Run() error {
	s.results = nil
	s.selected = 0
	if s.query == "" {
		return nil
	}
	files, err := finder.ListFiles(s.root)
	if err != nil {
		return err
	}

	re := compile(s.query)
	for _, rel := range files {
		lines, ok := readText(filepath.Join(s.root, filepath.FromSlash(rel)))
		if !ok {
			continue
		}
		for _, m := range findInLines(re, lines, MaxResults-len(s.results)) {
			s.results = append(s.results, Result{
				Path: rel,
				Line: m.Line,
				Col:  m.StartCol,
				Text: strings.TrimSpace(lines[m.Line]),
			})
		}
		if len(s.results) >= MaxResults {
			break
		}
	}
	logger.DebugTagf("search", "'%s': %d result(s)", s.query, len(s.results))
	return nil
}

// readText returns the lines of a UTF-8 text file.
func readText(path string) ([]string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxFileSize {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil || bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, false
	}
	return strings.Split(string(data), "\n"), true
}

// Next moves the selection down, wrapping.
func (s *Search) Next() {
	if len(s.results) > 0 {
		s.selected = (s.selected + 1) % len(s.results)
	}
}

// Previous moves the selection up, wrapping.
func (s *Search) Previous() {
	if len(s.results) > 0 {
		s.selected = (s.selected - 1 + len(s.results)) % len(s.results)
	}
}

// Selected returns the selected result with Path made absolute to the root.
func (s *Search) Selected() (Result, bool) {
	if s.selected >= len(s.results) {
		return Result{}, false
	}
	r := s.results[s.selected]
	r.Path = filepath.Join(s.root, filepath.FromSlash(r.Path))
	return r, true
}

func (s *Search) Query() string { return s.query }
func (s *Search) Results() []Result { return s.results }
func (s *Search) SelectedIndex() int { return s.selected }
