package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // attribute key used for tag filtering

// filteringHandler wraps a base slog.Handler and drops records by package
// or tag before they reach it.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{baseHandler: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// Handle applies the package and tag filters.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if pkg := recordPackage(r); pkg != "" {
		if foundInSet(h.cfg.disabledPackagesSet, pkg) {
			return nil
		}
		if h.cfg.enabledPackagesSet != nil && !foundInSet(h.cfg.enabledPackagesSet, pkg) {
			return nil
		}
	}

	var tag string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			return false
		}
		return true
	})

	if tag != "" {
		if foundInSet(h.cfg.disabledTagsSet, tag) {
			return nil
		}
		if h.cfg.enabledTagsSet != nil && !foundInSet(h.cfg.enabledTagsSet, tag) {
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Filtering for specific tags; untagged messages are dropped.
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// recordPackage returns the lowercased directory name of the caller.
func recordPackage(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
