package highlighter

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// tokenStyle maps a chroma token type to a theme style name.
func tokenStyle(t chroma.TokenType) string {
	switch {
	case t == chroma.KeywordType || t == chroma.NameClass:
		return "type"
	case t == chroma.KeywordConstant || t == chroma.NameConstant:
		return "constant"
	case t.InCategory(chroma.Keyword):
		return "keyword"
	case t.InSubCategory(chroma.LiteralString):
		return "string"
	case t.InSubCategory(chroma.LiteralNumber):
		return "number"
	case t.InCategory(chroma.Comment):
		return "comment"
	case t == chroma.NameFunction || t == chroma.NameBuiltin:
		return "function"
	}
	return ""
}

// highlightChroma lexes the whole buffer and splits tokens at newlines.
func highlightChroma(lexer chroma.Lexer, lines []string) (Result, error) {
	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("chroma lexing failed: %w", err)
	}

	b := newResultBuilder()
	row, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		style := tokenStyle(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
				col = 0
			}
			n := len([]rune(part))
			b.add(row, col, col+n, style)
			col += n
		}
	}
	return b.result(), nil
}
