package lang

import (
	"fmt"
	"io/fs"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/zim/internal/logger"
)

// Language represents a programming language with its syntax highlighting configuration
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the grammar. Nil means chroma lexes the file.
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// QueryPath is the directory under queries/ holding highlights.scm
	QueryPath string
}

// Query loads the highlight query for this language from fsys.
func (l *Language) Query(fsys fs.FS) ([]byte, error) {
	if fsys == nil || l.QueryPath == "" {
		return nil, fmt.Errorf("no highlight query for %s", l.Name)
	}
	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(fsys, queryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read query '%s': %w", queryPath, err)
	}
	logger.DebugTagf("highlight", "Loaded query from %s for %s (%d bytes)", queryPath, l.Name, len(query))
	return query, nil
}
