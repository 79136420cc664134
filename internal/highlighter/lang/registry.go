package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/zim/internal/logger"
)

// Registry maps file extensions to languages.
type Registry struct {
	mu            sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{extToLanguage: make(map[string]*Language)}
}

// Register adds a language. A later registration wins an extension.
func (r *Registry) Register(lang *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.languages = append(r.languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := r.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		r.extToLanguage[lowerExt] = lang
	}
	logger.DebugTagf("highlight", "Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// ForFile returns the language for a given file path, or nil.
func (r *Registry) ForFile(filePath string) *Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// All returns all registered languages
func (r *Registry) All() []*Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Language, len(r.languages))
	copy(result, r.languages)
	return result
}
