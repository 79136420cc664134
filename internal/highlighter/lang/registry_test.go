package lang

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	goLang := &Language{Name: "Go", Extensions: []string{".go"}, QueryPath: "go"}
	r.Register(goLang)
	r.Register(&Language{Name: "Markdown", Extensions: []string{".MD", ".markdown"}})

	assert.Same(t, goLang, r.ForFile("/src/main.go"))
	assert.Equal(t, "Markdown", r.ForFile("README.md").Name, "extensions fold case")
	assert.Nil(t, r.ForFile("Makefile"))
	assert.Len(t, r.All(), 2)
}

func TestQuery(t *testing.T) {
	fsys := fstest.MapFS{"queries/go/highlights.scm": {Data: []byte("(comment) @comment")}}
	q, err := (&Language{Name: "Go", QueryPath: "go"}).Query(fsys)
	require.NoError(t, err)
	assert.Equal(t, "(comment) @comment", string(q))

	_, err = (&Language{Name: "Rust", QueryPath: "rust"}).Query(fsys)
	assert.Error(t, err)
	_, err = (&Language{Name: "Plain"}).Query(fsys)
	assert.Error(t, err)
}
