package lexer

import (
	"tabtidy/internal/source"
)

// RowKind classifies one physical line before any structural parsing.
type RowKind uint8

const (
	RowBlank RowKind = iota
	RowSectionHeader
	RowStatement
)

// RawCell is one cell as found in the source, before role assignment.
type RawCell struct {
	Text  string
	Col   uint32 // 1-based byte column of the first character
	Start uint32 // byte offset in the file
	End   uint32
}

// Row is one scanned physical line.
type Row struct {
	Kind     RowKind
	Line     uint32 // 1-based
	Indented bool   // the row started with a separator (body row)
	Pipe     bool   // the row used pipe separators
	Cells    []RawCell
	Span     source.Span
}

// IsContinuation reports whether the row's first cell is the "..." marker.
func (r Row) IsContinuation() bool {
	return len(r.Cells) > 0 && r.Cells[0].Text == "..."
}
