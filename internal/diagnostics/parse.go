package diagnostics

import (
	"bufio"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// goPosLine matches "path/file.go:12:5: message" and "file.go:12: message",
// optionally prefixed by "vet: ".
var goPosLine = regexp.MustCompile(`^(?:vet: )?(\S+?\.go):(\d+)(?::(\d+))?: (.*)$`)

// ParseGoOutput parses the output of the go tool. Relative paths are joined
// to dir. Lines starting with a tab continue the previous message.
func ParseGoOutput(output, dir, source string, sev Severity) *Collection {
	c := NewCollection()
	var last *Diagnostic

	flush := func() {
		if last != nil {
			c.Add(*last)
			last = nil
		}
	}

	sc := bufio.NewScanner(strings.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(text, "\t") {
			if last != nil {
				last.Message += "\n" + strings.TrimSpace(text)
			}
			continue
		}
		m := goPosLine.FindStringSubmatch(text)
		if m == nil {
			// "# pkg" headers and summary lines carry no position.
			continue
		}
		flush()

		line, _ := strconv.Atoi(m[2])
		col := 1
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		path := m[1]
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		start := max(col-1, 0)
		last = &Diagnostic{
			Message:  strings.TrimSpace(m[4]),
			Severity: sev,
			Span:     Span{Line: max(line-1, 0), Start: start, End: start + 1},
			FilePath: filepath.Clean(path),
			Source:   source,
		}
	}
	flush()
	return c
}
