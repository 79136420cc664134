// Package clipboard holds the yank register, optionally mirrored to the
// system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/zim/internal/logger"
)

// System is the OS clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type osClipboard struct{}

func (osClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (osClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Register is the yank register.
type Register struct {
	text     string
	linewise bool
	system   System // nil when system mirroring is off
}

// New creates a register. With useSystem, yanks are mirrored to the OS
// clipboard when one is available.
func New(useSystem bool) *Register {
	r := &Register{}
	if useSystem {
		if clipboard.Unsupported {
			logger.Warnf("Clipboard: system clipboard unsupported, using internal register")
		} else {
			r.system = osClipboard{}
		}
	}
	return r
}

// NewWithSystem creates a register backed by sys.
func NewWithSystem(sys System) *Register {
	return &Register{system: sys}
}

// Set stores text. linewise marks text made of whole lines.
func (r *Register) Set(text string, linewise bool) {
	r.text = text
	r.linewise = linewise
	if r.system == nil {
		return
	}
	if err := r.system.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, keeping internal copy: %v", err)
	}
}

// Get returns the register contents. The system clipboard wins when it
// holds something other than the last yank; such text is never linewise.
func (r *Register) Get() (string, bool) {
	if r.system != nil {
		text, err := r.system.ReadAll()
		if err != nil {
			logger.Debugf("Clipboard: system read failed: %v", err)
		} else if text != "" && text != r.text {
			return text, false
		}
	}
	return r.text, r.linewise
}

// Empty reports whether there is nothing to paste.
func (r *Register) Empty() bool {
	text, _ := r.Get()
	return text == ""
}
