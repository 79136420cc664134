package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInLines(t *testing.T) {
	lines := []string{"Hello hello", "nothing", "héllo HELLO"}
	got := FindInLines(lines, "hello")
	assert.Equal(t, []LineMatch{
		{Line: 0, StartCol: 0, EndCol: 5},
		{Line: 0, StartCol: 6, EndCol: 11},
		{Line: 2, StartCol: 6, EndCol: 11},
	}, got, "columns are runes")

	assert.Len(t, FindInLines([]string{"a.b", "axb"}, "a.b"), 1, "query is literal")
	assert.Nil(t, FindInLines(lines, ""))
}

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for rel, data := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
	return root
}

func TestRun(t *testing.T) {
	root := writeFiles(t, map[string][]byte{
		"a.go":      []byte("package a\n\nfunc Token() {}\n"),
		"sub/b.txt": []byte("no match\n  a TOKEN here\n"),
		"bin.dat":   {'t', 'o', 'k', 'e', 'n', 0, 1},
		".hidden/c": []byte("token"),
	})

	s := New(root)
	for _, r := range "token" {
		s.AddChar(r)
	}
	require.NoError(t, s.Run())
	require.Len(t, s.Results(), 2)
	assert.Equal(t, Result{Path: "a.go", Line: 2, Col: 5, Text: "func Token() {}"}, s.Results()[0])
	assert.Equal(t, Result{Path: "sub/b.txt", Line: 1, Col: 4, Text: "a TOKEN here"}, s.Results()[1])

	s.Next()
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "sub", "b.txt"), sel.Path)
	s.Next()
	assert.Equal(t, 0, s.SelectedIndex())
	s.Previous()
	assert.Equal(t, 1, s.SelectedIndex())
}

func TestRunCapsResults(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < MaxResults+50; i++ {
		fmt.Fprintf(&sb, "x%d\n", i)
	}
	root := writeFiles(t, map[string][]byte{"many.txt": []byte(sb.String())})

	s := New(root)
	s.AddChar('x')
	require.NoError(t, s.Run())
	assert.Len(t, s.Results(), MaxResults)
}

func TestEmptyQuery(t *testing.T) {
	s := New(t.TempDir())
	s.AddChar('a')
	s.RemoveChar()
	s.RemoveChar()
	require.NoError(t, s.Run())
	assert.Empty(t, s.Results())
	_, ok := s.Selected()
	assert.False(t, ok)
}
