// internal/highlighter/languages.go
package highlighter

import (
	"embed"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"

	"github.com/bethropolis/zim/internal/highlighter/lang"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

// DefaultRegistry returns the languages with a tree-sitter grammar.
// Other files fall back to chroma.
func DefaultRegistry() *lang.Registry {
	r := lang.NewRegistry()
	r.Register(&lang.Language{
		Name:           "Go",
		TreeSitterLang: gosrc.GetLanguage(),
		Extensions:     []string{".go"},
		QueryPath:      "go",
	})
	r.Register(&lang.Language{
		Name:           "Python",
		TreeSitterLang: pythonsrc.GetLanguage(),
		Extensions:     []string{".py", ".pyw"},
		QueryPath:      "python",
	})
	r.Register(&lang.Language{
		Name:           "JavaScript",
		TreeSitterLang: jssrc.GetLanguage(),
		Extensions:     []string{".js", ".mjs", ".cjs"},
		QueryPath:      "javascript",
	})
	r.Register(&lang.Language{
		Name:           "Rust",
		TreeSitterLang: rustsrc.GetLanguage(),
		Extensions:     []string{".rs"},
		QueryPath:      "rust",
	})
	return r
}
