package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
	noteColor    = color.New(color.FgBlue)
)

// Text renders diagnostics one per line:
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//
// with optional source context and notes underneath. Идёт по bag.Items()
// (ожидается bag.Sort() заранее).
func Text(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts TextOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts TextOpts) {
	if loc, ok := resolveSpan(fs, d.Primary, opts.PathMode); ok {
		fmt.Fprintf(w, "%s:%d:%d: ", loc.Path, loc.Line, loc.Column)
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		paint(severityColor(d.Severity), d.Severity.Label(), opts.Color),
		paint(codeColor, d.Code.ID(), opts.Color),
		sanitizeMessage(d.Message))

	if opts.Context {
		writeContext(w, d.Primary, fs)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			if loc, ok := resolveSpan(fs, note.Span, opts.PathMode); ok {
				fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
					paint(noteColor, "note", opts.Color),
					loc.Path, loc.Line, loc.Column, sanitizeMessage(note.Msg))
			} else {
				fmt.Fprintf(w, "  %s: %s\n",
					paint(noteColor, "note", opts.Color), sanitizeMessage(note.Msg))
			}
		}
	}
}

// writeContext prints the first line of the span with a caret underneath.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet) {
	loc, ok := resolveSpan(fs, span, PathModeAuto)
	if !ok {
		return
	}
	line := fs.Get(span.File).GetLine(loc.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	width := int(span.Len())
	if avail := len(line) - int(loc.Column) + 1; width > avail {
		width = avail
	}
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(loc.Column)-1), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

// resolveSpan converts a span into path/line/column. A span that points at
// nothing (load errors carry no file) resolves to false.
func resolveSpan(fs *source.FileSet, span source.Span, mode PathMode) (loc resolvedSpan, ok bool) {
	defer func() {
		if recover() != nil {
			loc = resolvedSpan{}
			ok = false
		}
	}()

	if fs == nil || (span.Empty() && span.File == 0 && span.Start == 0) {
		return resolvedSpan{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(formatPath(file, fs, mode)),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	return f.FormatPath("auto", "")
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
