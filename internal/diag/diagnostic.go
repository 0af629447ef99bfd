package diag

import (
	"tabtidy/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single replacement of a byte span with new text.
// OldText, when non-empty, must match the current content of the span;
// the fix engine skips the edit otherwise.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithFix returns a copy of the diagnostic with an attached fix.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
