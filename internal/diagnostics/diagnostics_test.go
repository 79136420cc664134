package diagnostics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildOutput = `# example.com/demo
./main.go:12:5: undefined: frobnicate
./main.go:3:2: "os" imported and not used
util/helper.go:7: missing return
vet: ./main.go:20:9: fmt.Printf format %d has arg s of wrong type string
	have string
	want int
some summary line
`

func TestParseGoOutput(t *testing.T) {
	c := ParseGoOutput(buildOutput, "/proj", "go build", SeverityError)
	require.Equal(t, 4, c.Len())

	all := c.All()
	assert.Equal(t, "undefined: frobnicate", all[0].Message)
	assert.Equal(t, Span{Line: 11, Start: 4, End: 5}, all[0].Span)
	assert.Equal(t, filepath.Join("/proj", "main.go"), all[0].FilePath)
	assert.Equal(t, "go build", all[0].Source)

	assert.Equal(t, Span{Line: 6, Start: 0, End: 1}, all[2].Span, "missing column means column one")
	assert.Equal(t, filepath.Join("/proj", "util", "helper.go"), all[2].FilePath)

	assert.Equal(t, "fmt.Printf format %d has arg s of wrong type string\nhave string\nwant int", all[3].Message)
}

func TestCollectionQueries(t *testing.T) {
	c := NewCollection()
	c.Add(Diagnostic{Message: "a", Severity: SeverityError, Span: Span{Line: 4}})
	c.Add(Diagnostic{Message: "b", Severity: SeverityWarning, Span: Span{Line: 9}})
	c.Add(Diagnostic{Message: "c", Severity: SeverityError, Span: Span{Line: 4}})

	assert.Equal(t, 2, c.ErrorCount())
	assert.Equal(t, 1, c.WarningCount())
	assert.Len(t, c.ForLine(4), 2)
	assert.Empty(t, c.ForLine(5))
	assert.Equal(t, []int{4, 9}, c.Lines())

	next, ok := c.NextLine(4)
	assert.True(t, ok)
	assert.Equal(t, 9, next)
	next, _ = c.NextLine(9)
	assert.Equal(t, 4, next, "wraps to the first")

	prev, _ := c.PrevLine(9)
	assert.Equal(t, 4, prev)
	prev, _ = c.PrevLine(0)
	assert.Equal(t, 9, prev, "wraps to the last")

	c.Clear()
	_, ok = c.NextLine(0)
	assert.False(t, ok)
}

func TestSpanContains(t *testing.T) {
	s := Span{Line: 2, Start: 3, End: 6}
	assert.True(t, s.Contains(2, 3))
	assert.False(t, s.Contains(2, 6))
	assert.False(t, s.Contains(1, 4))
}

func TestForFile(t *testing.T) {
	dir := t.TempDir()
	c := ParseGoOutput("./a.go:1:1: x\n./b.go:2:1: y\n./a.go:3:1: z\n", dir, "go vet", SeverityWarning)
	a := c.ForFile(filepath.Join(dir, "a.go"))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 0, c.ForFile("").Len())
}

func TestRunReportsBuildErrors(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no shell")
	}
	dir := t.TempDir()
	tool := Tool{Name: "sh", Args: []string{"-c", "echo './x.go:2:3: boom' >&2; exit 1"}, Severity: SeverityError}

	c, err := Run(context.Background(), dir, tool)
	require.NoError(t, err, "a failing check is a result, not an error")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "boom", c.All()[0].Message)
	assert.Equal(t, "sh -c", c.All()[0].Source)

	_, err = Run(context.Background(), dir, Tool{Name: "definitely-not-a-real-tool-zim"})
	assert.Error(t, err)
}
