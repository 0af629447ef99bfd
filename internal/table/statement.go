package table

import (
	"tabtidy/internal/source"
)

// Statement is one row of cells. A logical source line that spans several
// physical lines is represented as a head statement followed by statements
// with Continuation set; a continuation statement's first cell is always the
// continuation marker.
type Statement struct {
	Cells        []Cell
	Continuation bool
	// BlankBefore preserves a single blank line that preceded the row.
	BlankBefore bool
	// Line is the 1-based physical line the row started on.
	Line uint32
	Span source.Span
}

// IsEmpty reports whether the statement carries no cells.
func (s *Statement) IsEmpty() bool {
	return len(s.Cells) == 0
}

// IsCommentOnly reports whether every cell is a comment.
func (s *Statement) IsCommentOnly() bool {
	if len(s.Cells) == 0 {
		return false
	}
	for _, c := range s.Cells {
		if c.Role != RoleComment {
			return false
		}
	}
	return true
}

// HasSettingCells reports whether the statement is a settings-role row
// (first non-marker cell tagged setting-name).
func (s *Statement) HasSettingCells() bool {
	for _, c := range s.Cells {
		if c.Role == RoleContinuation {
			continue
		}
		return c.Role == RoleSettingName
	}
	return false
}

// Texts returns the cell texts in order. Used by tests and rules.
func (s *Statement) Texts() []string {
	out := make([]string, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = c.Text
	}
	return out
}

// CommentSplit returns the non-comment prefix and any trailing comment cells.
// The parser guarantees comments only appear as a suffix.
func (s *Statement) CommentSplit() (body, comments []Cell) {
	cut := len(s.Cells)
	for cut > 0 && s.Cells[cut-1].Role == RoleComment {
		cut--
	}
	return s.Cells[:cut], s.Cells[cut:]
}
