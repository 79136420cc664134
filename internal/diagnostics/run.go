package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bethropolis/zim/internal/logger"
)

// Tool is an external checker whose output is in go tool format.
type Tool struct {
	Name     string
	Args     []string
	Severity Severity
}

var (
	GoBuild = Tool{Name: "go", Args: []string{"build", "./..."}, Severity: SeverityError}
	GoVet   = Tool{Name: "go", Args: []string{"vet", "./..."}, Severity: SeverityWarning}
)

// Label is the command line, e.g. "go vet".
func (t Tool) Label() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	return t.Name + " " + t.Args[0]
}

// Run executes tool in dir and parses its output. A non-zero exit with
// output is a normal result; only failing to run the tool is an error.
func Run(ctx context.Context, dir string, tool Tool) (*Collection, error) {
	cmd := exec.CommandContext(ctx, tool.Name, tool.Args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	logger.DebugTagf("diagnostics", "Running %s %s in %s", tool.Name, strings.Join(tool.Args, " "), dir)
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return NewCollection(), fmt.Errorf("failed to run '%s': %w", tool.Label(), err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return NewCollection(), fmt.Errorf("'%s' interrupted: %w", tool.Label(), ctxErr)
		}
	}

	c := ParseGoOutput(out.String(), dir, tool.Label(), tool.Severity)
	logger.Infof("%s: %d diagnostic(s)", tool.Label(), c.Len())
	return c, nil
}
