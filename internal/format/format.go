// Package format renders a parsed tabular file back into canonical text:
// section headers, case bodies and setting tables laid out by the alignment
// engine, with the original line-ending style restored on output.
//
// Назначение: единственная точка, где модель снова становится байтами.
// Не делает: файлового IO, диагностик правил, кеширования.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tabtidy/internal/align"
	"tabtidy/internal/diag"
	"tabtidy/internal/parser"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

// FormatFile parses and re-renders one file. Diagnostics from the lexer and
// parser go to rep; the returned bytes carry the file's original line-ending
// style and end with exactly one line terminator.
func FormatFile(sf *source.File, opts *Options, rep diag.Reporter) []byte {
	file := parser.ParseFile(sf, parser.Options{Reporter: rep})
	return RenderFile(sf, file, opts)
}

// RenderFile renders an already-parsed file.
func RenderFile(sf *source.File, file *table.File, opts *Options) []byte {
	var lines []string
	for i := range file.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		renderSection(&lines, &file.Sections[i], opts)
	}
	return joinLines(lines, sf.Ending)
}

func renderSection(lines *[]string, sec *table.Section, opts *Options) {
	if !sec.Header.IsEmpty() {
		text := sec.Header.Cells[0].Text
		if opts.NormalizeHeaders {
			text = canonicalHeader(text)
		}
		*lines = append(*lines, text)
	}

	style := opts.styleFor(sec.Kind)
	if style == nil {
		// comments and unknown sections pass through verbatim
		renderRaw(lines, &sec.Body)
		return
	}

	body := align.RenderBlock(&sec.Body, &style.Align, style.Aligned)
	*lines = append(*lines, body...)

	for i := range sec.Cases {
		c := &sec.Cases[i]
		if i > 0 || len(body) > 0 {
			*lines = append(*lines, "")
		}
		*lines = append(*lines, nameLine(&c.Name, &style.Align))
		*lines = append(*lines, align.RenderBlock(&c.Body, &style.Align, style.Aligned)...)
	}
}

// renderRaw emits body statements untouched; each carries its full source
// line as a single cell.
func renderRaw(lines *[]string, b *table.Block) {
	for _, s := range b.Statements() {
		if s.BlankBefore && len(*lines) > 0 {
			*lines = append(*lines, "")
		}
		if len(s.Cells) > 0 {
			*lines = append(*lines, s.Cells[0].Text)
		}
	}
}

// nameLine renders a case or keyword name row. Names sit at zero indent and
// never participate in the body's column scopes; a data-driven name row with
// trailing cells falls back to flat separators.
func nameLine(name *table.Statement, cfg *align.Config) string {
	sep := strings.Repeat(" ", cfg.SpaceCount)
	return strings.TrimRight(strings.Join(name.Texts(), sep), " ")
}

var headerTitle = cases.Title(language.English)

// canonicalHeader rewrites "***settings ***" into "*** Settings ***". The
// section word itself is kept (Tasks stays Tasks), only casing and star
// framing are normalized.
func canonicalHeader(text string) string {
	name := strings.TrimSpace(strings.Trim(text, "*"))
	if name == "" {
		return text
	}
	return "*** " + headerTitle.String(strings.ToLower(name)) + " ***"
}

func joinLines(lines []string, ending source.LineEnding) []byte {
	if len(lines) == 0 {
		return nil
	}
	eol := ending.Bytes()
	size := 0
	for _, l := range lines {
		size += len(l) + len(eol)
	}
	out := make([]byte, 0, size)
	for _, l := range lines {
		out = append(out, l...)
		out = append(out, eol...)
	}
	return out
}
