// internal/types/position.go
package types

// Position is a location inside a buffer.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts before other in row-major order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Ordered returns a and b sorted so that start <= end.
func Ordered(a, b Position) (start, end Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
