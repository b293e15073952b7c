// Package source owns the raw byte input to a parse and maps byte offsets to
// (line, column) pairs for diagnostic rendering.
package source

// Span locates a range of bytes in the original input. Position is
// authoritative; Line and Column are derived and used only for presentation.
type Span struct {
	Position int
	Length   int
	Line     int
	Column   int
}

// End returns the byte offset one past the span.
func (s Span) End() int {
	return s.Position + s.Length
}

// Source wraps a byte slice and a precomputed line-start index so that
// position→(line,column) lookups do not rescan the input on every query.
type Source struct {
	Name       string
	Bytes      []byte
	lineStarts []int
}

// New builds a Source over the given bytes, indexing newline offsets once.
func New(name string, data []byte) *Source {
	s := &Source{Name: name, Bytes: data}
	s.lineStarts = append(s.lineStarts, 0)
	for i, b := range data {
		if b == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Len returns the number of bytes in the source.
func (s *Source) Len() int {
	return len(s.Bytes)
}

// LineCol resolves a byte offset to a 1-based line and 0-based column,
// matching the convention the lexer tracks incrementally while scanning.
func (s *Source) LineCol(offset int) (line, column int) {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - s.lineStarts[lo]
}

// Span builds a Span for a byte range, deriving line/column from Position.
func (s *Source) Span(position, length int) Span {
	line, column := s.LineCol(position)
	return Span{Position: position, Length: length, Line: line, Column: column}
}

// LineText returns the full text of the given 1-based line, without its
// trailing newline, for use in code-frame rendering.
func (s *Source) LineText(line int) string {
	if line < 1 || line > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[line-1]
	end := len(s.Bytes)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
		if end > 0 && s.Bytes[end-1] == '\r' {
			end--
		}
	}
	if start > end {
		return ""
	}
	return string(s.Bytes[start:end])
}
