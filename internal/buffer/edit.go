package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/zim/internal/core/history"
	"github.com/bethropolis/zim/internal/logger"
	"github.com/bethropolis/zim/internal/types"
)

// All mutations treat an out-of-range line as a no-op and clamp columns to
// [0, LineLength]. Each one records its inverse in the history.

// InsertCharAt inserts c before the column at pos. A newline splits the line.
func (sb *SliceBuffer) InsertCharAt(pos types.Position, c rune) {
	if c == '\n' {
		sb.InsertNewlineAt(pos)
		return
	}
	if !sb.validLine(pos.Line) {
		logger.Debugf("Buffer: InsertCharAt out of range %v", pos)
		return
	}
	at := sb.clampPos(pos)
	sb.insertText(at, string(c))
	sb.touch()
	sb.record(history.InsertChar{Pos: at, Char: c}, at, types.Position{Line: at.Line, Col: at.Col + 1})
}

// DeleteCharAt removes the character at pos.
func (sb *SliceBuffer) DeleteCharAt(pos types.Position) {
	if !sb.validLine(pos.Line) || pos.Col < 0 || pos.Col >= sb.LineLength(pos.Line) {
		return
	}
	runes := []rune(sb.lines[pos.Line])
	c := runes[pos.Col]
	sb.lines[pos.Line] = string(runes[:pos.Col]) + string(runes[pos.Col+1:])
	sb.touch()
	sb.record(history.DeleteChar{Pos: pos, Char: c}, pos, pos)
}

// InsertNewlineAt splits the line at pos; the tail moves to a new line below.
func (sb *SliceBuffer) InsertNewlineAt(pos types.Position) {
	if !sb.validLine(pos.Line) {
		return
	}
	at := sb.clampPos(pos)
	head, tail := splitRunes(sb.lines[at.Line], at.Col)
	sb.lines[at.Line] = head
	sb.insertLine(at.Line+1, tail)
	sb.touch()
	sb.record(history.InsertNewline{Pos: at, Remaining: tail}, at, types.Position{Line: at.Line + 1})
}

// DeleteLine removes a line. Deleting the only line leaves one empty line.
func (sb *SliceBuffer) DeleteLine(line int) {
	if !sb.validLine(line) {
		return
	}
	content := sb.lines[line]
	sole := len(sb.lines) == 1
	if sole {
		sb.lines[0] = ""
	} else {
		sb.removeLine(line)
	}
	after := line
	if after >= len(sb.lines) {
		after = len(sb.lines) - 1
	}
	sb.touch()
	sb.record(history.DeleteLine{Line: line, Content: content, Sole: sole},
		types.Position{Line: line}, types.Position{Line: after})
}

// JoinLine appends line+1 to line.
func (sb *SliceBuffer) JoinLine(line int) {
	if !sb.validLine(line) || !sb.validLine(line+1) {
		return
	}
	col := sb.LineLength(line)
	sb.lines[line] += sb.lines[line+1]
	sb.removeLine(line + 1)
	sb.touch()
	sb.record(history.JoinLines{Line: line, Col: col},
		types.Position{Line: line + 1}, types.Position{Line: line, Col: col})
}

// OpenLineBelow inserts an empty line after line and returns its index.
func (sb *SliceBuffer) OpenLineBelow(line int) (int, bool) {
	if !sb.validLine(line) {
		return 0, false
	}
	newLine := line + 1
	sb.insertLine(newLine, "")
	sb.touch()
	sb.record(history.OpenLineBelow{Line: newLine}, types.Position{Line: line}, types.Position{Line: newLine})
	return newLine, true
}

// OpenLineAbove inserts an empty line before line and returns its index.
func (sb *SliceBuffer) OpenLineAbove(line int) (int, bool) {
	if !sb.validLine(line) {
		return 0, false
	}
	sb.insertLine(line, "")
	sb.touch()
	sb.record(history.OpenLineAbove{Line: line}, types.Position{Line: line}, types.Position{Line: line})
	return line, true
}

// DeleteWordAt removes the run of non-whitespace (or whitespace, if pos is
// on whitespace) that starts at pos.
func (sb *SliceBuffer) DeleteWordAt(pos types.Position) {
	if !sb.validLine(pos.Line) || pos.Col < 0 || pos.Col >= sb.LineLength(pos.Line) {
		return
	}
	runes := []rune(sb.lines[pos.Line])
	end := wordEnd(runes, pos.Col)
	text := string(runes[pos.Col:end])
	sb.lines[pos.Line] = string(runes[:pos.Col]) + string(runes[end:])
	sb.touch()
	sb.record(history.DeleteWord{Pos: pos, Text: text}, pos, pos)
}

// DeleteToEndOfLine removes everything from pos to the end of its line.
func (sb *SliceBuffer) DeleteToEndOfLine(pos types.Position) {
	if !sb.validLine(pos.Line) {
		return
	}
	at := sb.clampPos(pos)
	head, tail := splitRunes(sb.lines[at.Line], at.Col)
	if tail == "" {
		return
	}
	sb.lines[at.Line] = head
	sb.touch()
	sb.record(history.DeleteToEndOfLine{Pos: at, Text: tail}, at, at)
}

// DeleteToStartOfLine removes everything before pos on its line.
func (sb *SliceBuffer) DeleteToStartOfLine(pos types.Position) {
	if !sb.validLine(pos.Line) {
		return
	}
	at := sb.clampPos(pos)
	head, tail := splitRunes(sb.lines[at.Line], at.Col)
	if head == "" {
		return
	}
	sb.lines[at.Line] = tail
	sb.touch()
	sb.record(history.DeleteToStartOfLine{Pos: at, Text: head}, at, types.Position{Line: at.Line})
}

// InsertText inserts text, which may span lines, at pos and returns the
// position just past it.
func (sb *SliceBuffer) InsertText(pos types.Position, text string) (types.Position, bool) {
	if !sb.validLine(pos.Line) || text == "" {
		return pos, false
	}
	at := sb.clampPos(pos)
	end := sb.replaceRange(at, at, text)
	sb.touch()
	sb.record(history.ReplaceSelection{NewText: text, Start: at, End: at}, at, end)
	return end, true
}

// --- primitives (no history, no validation beyond bounds) ---

func (sb *SliceBuffer) clampPos(pos types.Position) types.Position {
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := sb.LineLength(pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}

func (sb *SliceBuffer) insertLine(index int, content string) {
	if index < 0 || index > len(sb.lines) {
		return
	}
	sb.lines = append(sb.lines, "")
	copy(sb.lines[index+1:], sb.lines[index:])
	sb.lines[index] = content
}

// removeLine never leaves the buffer empty.
func (sb *SliceBuffer) removeLine(index int) {
	if !sb.validLine(index) {
		return
	}
	if len(sb.lines) == 1 {
		sb.lines[0] = ""
		return
	}
	sb.lines = append(sb.lines[:index], sb.lines[index+1:]...)
}

// insertText inserts single-line text at a clamped position.
func (sb *SliceBuffer) insertText(at types.Position, text string) {
	head, tail := splitRunes(sb.lines[at.Line], at.Col)
	sb.lines[at.Line] = head + text + tail
}

// textRange returns the text in [start, end), lines joined by "\n".
func (sb *SliceBuffer) textRange(start, end types.Position) string {
	if start.Line == end.Line {
		runes := []rune(sb.lines[start.Line])
		return string(runes[start.Col:end.Col])
	}
	var b strings.Builder
	_, first := splitRunes(sb.lines[start.Line], start.Col)
	b.WriteString(first)
	for line := start.Line + 1; line < end.Line; line++ {
		b.WriteByte('\n')
		b.WriteString(sb.lines[line])
	}
	last, _ := splitRunes(sb.lines[end.Line], end.Col)
	b.WriteByte('\n')
	b.WriteString(last)
	return b.String()
}

// replaceRange swaps [start, end) for text and returns the end of the
// inserted text. Both positions must be valid.
func (sb *SliceBuffer) replaceRange(start, end types.Position, text string) types.Position {
	head, _ := splitRunes(sb.lines[start.Line], start.Col)
	_, tail := splitRunes(sb.lines[end.Line], end.Col)
	replacement := strings.Split(head+text+tail, "\n")

	lines := make([]string, 0, len(sb.lines)-(end.Line-start.Line)+len(replacement)-1)
	lines = append(lines, sb.lines[:start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, sb.lines[end.Line+1:]...)
	sb.lines = lines

	return endOf(start, text)
}

// endOf returns the position just past text inserted at start.
func endOf(start types.Position, text string) types.Position {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCountInString(text)}
	}
	return types.Position{
		Line: start.Line + len(parts) - 1,
		Col:  utf8.RuneCountInString(parts[len(parts)-1]),
	}
}

// splitRunes splits s before the rune at col.
func splitRunes(s string, col int) (string, string) {
	if col <= 0 {
		return "", s
	}
	i := 0
	for byteIdx := range s {
		if i == col {
			return s[:byteIdx], s[byteIdx:]
		}
		i++
	}
	return s, ""
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// wordEnd returns the end of the whitespace or non-whitespace run at col.
func wordEnd(runes []rune, col int) int {
	space := isSpace(runes[col])
	end := col
	for end < len(runes) && isSpace(runes[end]) == space {
		end++
	}
	return end
}
