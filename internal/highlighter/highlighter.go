// Package highlighter computes syntax styles for buffers.
package highlighter

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/zim/internal/highlighter/lang"
	"github.com/bethropolis/zim/internal/logger"
)

// StyledRange is a half-open rune column range on one line.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}

// Result maps line number -> styled ranges on that line, sorted by StartCol.
type Result map[int][]StyledRange

// StyleAt returns the style of the narrowest range covering (line, col).
func (r Result) StyleAt(line, col int) (string, bool) {
	best := -1
	name := ""
	for _, sr := range r[line] {
		if col < sr.StartCol || col >= sr.EndCol {
			continue
		}
		if w := sr.EndCol - sr.StartCol; best < 0 || w < best {
			best, name = w, sr.StyleName
		}
	}
	return name, best >= 0
}

// Backend names the engine behind a Syntax handle.
type Backend string

const (
	BackendTreeSitter Backend = "tree-sitter"
	BackendChroma     Backend = "chroma"
	BackendPlain      Backend = "plain"
)

// Target is a buffer that can carry a syntax handle.
type Target interface {
	FilePath() string
	Lines() []string
	Bytes() []byte
	Version() uint64
	Syntax() any
	SetSyntax(handle any)
}

// Syntax is the per-buffer handle stored on the buffer. It caches the last
// result against the buffer version.
type Syntax struct {
	path    string
	lang    *lang.Language
	query   *sitter.Query
	lexer   chroma.Lexer
	backend Backend

	computed bool
	version  uint64
	result   Result
	runs     int
}

// Backend reports which engine highlights the buffer.
func (s *Syntax) Backend() Backend { return s.backend }

// LanguageName is the display name, or "" for plain text.
func (s *Syntax) LanguageName() string {
	switch {
	case s.lang != nil:
		return s.lang.Name
	case s.lexer != nil:
		return s.lexer.Config().Name
	}
	return ""
}

// Highlighter service manages parsing and querying syntax trees.
type Highlighter struct {
	parser   *sitter.Parser
	registry *lang.Registry
	queries  fs.FS
	compiled map[string]*sitter.Query // by language name; nil marks a failed compile
}

// NewHighlighter creates a highlighter over the built-in languages.
func NewHighlighter() *Highlighter {
	return New(DefaultRegistry(), embeddedQueries)
}

// New creates a highlighter with an explicit registry and query files.
func New(registry *lang.Registry, queries fs.FS) *Highlighter {
	return &Highlighter{
		parser:   sitter.NewParser(),
		registry: registry,
		queries:  queries,
		compiled: make(map[string]*sitter.Query),
	}
}

func (h *Highlighter) queryFor(l *lang.Language) *sitter.Query {
	if q, ok := h.compiled[l.Name]; ok {
		return q
	}
	var q *sitter.Query
	src, err := l.Query(h.queries)
	if err == nil {
		q, err = sitter.NewQuery(src, l.TreeSitterLang)
	}
	if err != nil {
		logger.Warnf("Highlighter: no usable query for %s, using chroma: %v", l.Name, err)
		q = nil
	}
	h.compiled[l.Name] = q
	return q
}

// Attach picks a backend for buf from its file name and stores the handle.
func (h *Highlighter) Attach(buf Target) *Syntax {
	path := buf.FilePath()
	s := &Syntax{path: path, backend: BackendPlain}

	if path != "" {
		if l := h.registry.ForFile(path); l != nil && l.TreeSitterLang != nil {
			if q := h.queryFor(l); q != nil {
				s.lang, s.query, s.backend = l, q, BackendTreeSitter
			}
		}
		if s.backend == BackendPlain {
			if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
				s.lexer, s.backend = chroma.Coalesce(lexer), BackendChroma
			}
		}
	}

	logger.DebugTagf("highlight", "Attached %s backend to '%s'", s.backend, path)
	buf.SetSyntax(s)
	return s
}

// Highlight returns the styles for buf, recomputing only when the buffer
// changed since the last call.
func (h *Highlighter) Highlight(buf Target) Result {
	s, ok := buf.Syntax().(*Syntax)
	if !ok || s.path != buf.FilePath() {
		s = h.Attach(buf)
	}
	if s.computed && s.version == buf.Version() {
		return s.result
	}

	var (
		result Result
		err    error
	)
	switch s.backend {
	case BackendTreeSitter:
		result, err = h.highlightTree(s, buf)
	case BackendChroma:
		result, err = highlightChroma(s.lexer, buf.Lines())
	default:
		result = Result{}
	}
	if err != nil {
		logger.Warnf("Highlighter: %v", err)
		result = Result{}
	}

	s.result = result
	s.version = buf.Version()
	s.computed = true
	s.runs++
	return result
}

func (h *Highlighter) highlightTree(s *Syntax, buf Target) (Result, error) {
	h.parser.SetLanguage(s.lang.TreeSitterLang)
	tree, err := h.parser.ParseCtx(context.Background(), nil, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", s.path, err)
	}
	defer tree.Close()

	lines := buf.Lines()
	b := newResultBuilder()

	qc := sitter.NewQueryCursor()
	qc.Exec(s.query, tree.RootNode())
	for {
		match, exists := qc.NextMatch()
		if !exists {
			break
		}
		for _, capture := range match.Captures {
			style := captureNameToStyleName(s.query.CaptureNameForId(capture.Index))
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()
			startRow, endRow := int(start.Row), int(end.Row)

			// Multi-line captures are split into one range per line.
			for row := startRow; row <= endRow && row < len(lines); row++ {
				startCol, endCol := 0, utf8.RuneCountInString(lines[row])
				if row == startRow {
					startCol = byteOffsetToRuneIndex(lines[row], int(start.Column))
				}
				if row == endRow {
					endCol = byteOffsetToRuneIndex(lines[row], int(end.Column))
				}
				b.add(row, startCol, endCol, style)
			}
		}
	}
	return b.result(), nil
}

// resultBuilder collects ranges; a later capture of the same span wins.
type resultBuilder struct {
	ranges map[int][]StyledRange
	index  map[[3]int]int
}

func newResultBuilder() *resultBuilder {
	return &resultBuilder{ranges: make(map[int][]StyledRange), index: make(map[[3]int]int)}
}

func (b *resultBuilder) add(line, startCol, endCol int, style string) {
	if endCol <= startCol || style == "" {
		return
	}
	key := [3]int{line, startCol, endCol}
	if i, ok := b.index[key]; ok {
		b.ranges[line][i].StyleName = style
		return
	}
	b.index[key] = len(b.ranges[line])
	b.ranges[line] = append(b.ranges[line], StyledRange{StartCol: startCol, EndCol: endCol, StyleName: style})
}

func (b *resultBuilder) result() Result {
	out := make(Result, len(b.ranges))
	for line, ranges := range b.ranges {
		sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].StartCol < ranges[j].StartCol })
		out[line] = ranges
	}
	return out
}

// captureNameToStyleName maps Tree-sitter capture names (like @keyword.control)
// to the style names used by our theme system.
func captureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dotIndex := strings.Index(captureName, "."); dotIndex != -1 {
		return captureName[:dotIndex]
	}
	return captureName
}

// byteOffsetToRuneIndex converts a byte offset to a rune index in line.
func byteOffsetToRuneIndex(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCountInString(line[:byteOffset])
}
