// plugins/wordcount/wordcount.go
package wordcount

import (
	"bytes"
	"fmt"

	"github.com/bethropolis/zim/internal/plugin"
)

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount registers ":wc", which reports line, word and byte counts.
type WordCount struct {
	api plugin.EditorAPI
}

func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "WordCount"
}

func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

// Count returns the line, word and byte counts of content. Words are runs
// of non-whitespace.
func Count(content []byte, lineCount int) (lines, words, byteCount int) {
	return lineCount, len(bytes.Fields(content)), len(content)
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	lines, words, n := Count(p.api.GetBufferBytes(), p.api.GetBufferLineCount())
	p.api.SetStatusMessage("Lines: %d, Words: %d, Bytes: %d", lines, words, n)
	return nil
}
