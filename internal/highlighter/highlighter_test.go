package highlighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/zim/internal/buffer"
	"github.com/bethropolis/zim/internal/types"
)

const goSource = `package main

// hello
func main() {
	x := "hi"
	_ = 42
}`

func named(path string, lines ...string) *buffer.SliceBuffer {
	sb := buffer.FromLines(lines...)
	sb.SetFilePath(path)
	return sb
}

func goBuffer() *buffer.SliceBuffer {
	sb := buffer.NewSliceBuffer()
	sb.SetFilePath("main.go")
	sb.InsertText(types.Position{}, goSource)
	return sb
}

func assertStyle(t *testing.T, r Result, line, col int, want string) {
	t.Helper()
	got, ok := r.StyleAt(line, col)
	if assert.True(t, ok, "no style at %d:%d", line, col) {
		assert.Equal(t, want, got, "style at %d:%d", line, col)
	}
}

func TestTreeSitterGo(t *testing.T) {
	h := NewHighlighter()
	buf := goBuffer()
	r := h.Highlight(buf)

	s, ok := buf.Syntax().(*Syntax)
	require.True(t, ok)
	assert.Equal(t, BackendTreeSitter, s.Backend())
	assert.Equal(t, "Go", s.LanguageName())

	assertStyle(t, r, 0, 0, "keyword")
	assertStyle(t, r, 2, 3, "comment")
	assertStyle(t, r, 3, 0, "keyword")
	assertStyle(t, r, 3, 5, "function")
	assertStyle(t, r, 4, 6, "string")
	assertStyle(t, r, 5, 5, "number")
	_, ok = r.StyleAt(4, 1)
	assert.False(t, ok, "plain identifiers carry no style")
}

func TestResultIsCachedPerVersion(t *testing.T) {
	h := NewHighlighter()
	buf := goBuffer()

	first := h.Highlight(buf)
	second := h.Highlight(buf)
	s := buf.Syntax().(*Syntax)
	assert.Equal(t, 1, s.runs)
	assert.Equal(t, first, second)

	buf.InsertCharAt(types.Position{Line: 4, Col: 1}, 'y')
	h.Highlight(buf)
	assert.Equal(t, 2, s.runs, "edit invalidates the cache")
}

func TestRenameReattaches(t *testing.T) {
	h := NewHighlighter()
	buf := named("notes.zzzunknown", `name = "zim"`)
	h.Highlight(buf)
	assert.Equal(t, BackendPlain, buf.Syntax().(*Syntax).Backend())

	buf.SetFilePath("settings.toml")
	r := h.Highlight(buf)
	assert.Equal(t, BackendChroma, buf.Syntax().(*Syntax).Backend())
	assertStyle(t, r, 0, 8, "string")
}

func TestChromaSplitsMultilineTokens(t *testing.T) {
	h := NewHighlighter()
	buf := named("script.sh", "# first", "echo hi # second")
	r := h.Highlight(buf)
	assertStyle(t, r, 0, 2, "comment")
	assertStyle(t, r, 1, 10, "comment")
}

func TestUntitledIsPlain(t *testing.T) {
	h := NewHighlighter()
	buf := buffer.FromLines("func main() {}")
	assert.Empty(t, h.Highlight(buf))
}

func TestCaptureNameToStyleName(t *testing.T) {
	assert.Equal(t, "keyword", captureNameToStyleName("@keyword.control"))
	assert.Equal(t, "string", captureNameToStyleName("string"))
}

func TestByteOffsetToRuneIndex(t *testing.T) {
	assert.Equal(t, 0, byteOffsetToRuneIndex("héllo", -1))
	assert.Equal(t, 2, byteOffsetToRuneIndex("héllo", 3))
	assert.Equal(t, 5, byteOffsetToRuneIndex("héllo", 100))
}
