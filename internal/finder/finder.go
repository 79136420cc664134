// Package finder implements the fuzzy file picker.
package finder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/bethropolis/zim/internal/logger"
)

// MaxFiles caps a directory scan.
const MaxFiles = 20000

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"target":       true,
}

// ListFiles returns the regular files under root as sorted, slash-separated
// relative paths. Dot entries and dependency directories are skipped.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debugf("Finder: skipping '%s': %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || (d.IsDir() && skipDirs[name]) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		if len(files) >= MaxFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in '%s': %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Match is one candidate with the rune indexes that matched the query.
type Match struct {
	Path    string
	Score   int
	Matched []int
}

// Finder holds the picker state.
type Finder struct {
	root     string
	files    []string
	query    string
	matches  []Match
	selected int
}

// New creates a finder rooted at root. Call Refresh to scan.
func New(root string) *Finder {
	return &Finder{root: root}
}

// Refresh rescans the root and resets the query.
func (f *Finder) Refresh() error {
	files, err := ListFiles(f.root)
	if err != nil {
		return err
	}
	f.SetFiles(files)
	return nil
}

// SetFiles replaces the candidate list and resets the query.
func (f *Finder) SetFiles(files []string) {
	f.files = files
	f.query = ""
	f.update()
}

func (f *Finder) update() {
	f.selected = 0
	if f.query == "" {
		f.matches = make([]Match, len(f.files))
		for i, path := range f.files {
			f.matches[i] = Match{Path: path}
		}
		return
	}
	found := fuzzy.Find(f.query, f.files) // sorted by score, best first
	f.matches = make([]Match, len(found))
	for i, m := range found {
		f.matches[i] = Match{Path: m.Str, Score: m.Score, Matched: m.MatchedIndexes}
	}
}

// AddChar appends r to the query.
func (f *Finder) AddChar(r rune) {
	f.query += string(r)
	f.update()
}

// RemoveChar drops the last rune of the query.
func (f *Finder) RemoveChar() {
	if f.query == "" {
		return
	}
	runes := []rune(f.query)
	f.query = string(runes[:len(runes)-1])
	f.update()
}

// Next moves the selection down, wrapping.
func (f *Finder) Next() {
	if len(f.matches) > 0 {
		f.selected = (f.selected + 1) % len(f.matches)
	}
}

// Previous moves the selection up, wrapping.
func (f *Finder) Previous() {
	if len(f.matches) > 0 {
		f.selected = (f.selected - 1 + len(f.matches)) % len(f.matches)
	}
}

// Selected returns the selected file joined to the root.
func (f *Finder) Selected() (string, bool) {
	if f.selected >= len(f.matches) {
		return "", false
	}
	return filepath.Join(f.root, filepath.FromSlash(f.matches[f.selected].Path)), true
}

func (f *Finder) Query() string { return f.query }
func (f *Finder) Matches() []Match { return f.matches }
func (f *Finder) SelectedIndex() int { return f.selected }
func (f *Finder) Root() string { return f.root }
func (f *Finder) Files() []string { return f.files }
