package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSystem struct {
	text     string
	readErr  error
	writeErr error
}

func (f *fakeSystem) ReadAll() (string, error) { return f.text, f.readErr }

func (f *fakeSystem) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = text
	return nil
}

func TestInternalRegister(t *testing.T) {
	r := New(false)
	assert.True(t, r.Empty())

	r.Set("line one\nline two", true)
	text, linewise := r.Get()
	assert.Equal(t, "line one\nline two", text)
	assert.True(t, linewise)
}

func TestSystemMirror(t *testing.T) {
	sys := &fakeSystem{}
	r := NewWithSystem(sys)

	r.Set("abc", true)
	assert.Equal(t, "abc", sys.text)
	text, linewise := r.Get()
	assert.Equal(t, "abc", text)
	assert.True(t, linewise, "own yank keeps its granularity")

	sys.text = "copied elsewhere"
	text, linewise = r.Get()
	assert.Equal(t, "copied elsewhere", text)
	assert.False(t, linewise)
}

func TestSystemFailuresFallBack(t *testing.T) {
	sys := &fakeSystem{writeErr: errors.New("no display"), readErr: errors.New("no display")}
	r := NewWithSystem(sys)

	r.Set("kept", false)
	text, _ := r.Get()
	assert.Equal(t, "kept", text)
}
