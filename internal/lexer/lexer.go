// Package lexer splits the raw text of a tabular file into rows of cells.
//
// Назначение: перевод физических строк в ячейки (два и более пробела, таб
// или pipe как разделитель). Не делает: сборки стейтментов и блоков — это
// работа парсера.
package lexer

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
)

type Lexer struct {
	sf   *source.File
	opts Options

	sawPipe  bool
	sawSpace bool
	reported bool
}

func New(sf *source.File, opts Options) *Lexer {
	return &Lexer{sf: sf, opts: opts}
}

// Scan splits the whole file into rows. The scanner never fails: malformed
// lines still produce rows, with diagnostics reported on the side.
func (lx *Lexer) Scan() []Row {
	if lx.sf == nil {
		return nil
	}
	content := lx.sf.Content
	rows := make([]Row, 0, len(lx.sf.LineIdx)+1)

	lineStart := 0
	lineNum := uint32(1)
	for lineStart <= len(content) {
		lineEnd := lineStart
		for lineEnd < len(content) && content[lineEnd] != '\n' {
			lineEnd++
		}
		if lineStart == len(content) && lineNum > 1 {
			// content ended exactly on the previous newline
			break
		}
		lx.scanLine(&rows, string(content[lineStart:lineEnd]), lineNum, lineStart)
		lineStart = lineEnd + 1
		lineNum++
	}
	return rows
}

func (lx *Lexer) scanLine(rows *[]Row, line string, lineNum uint32, offset int) {
	off, err := safecast.Conv[uint32](offset)
	if err != nil {
		panic(fmt.Errorf("line offset overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](offset + len(line))
	if err != nil {
		panic(fmt.Errorf("line end overflow: %w", err))
	}
	span := source.Span{File: lx.sf.ID, Start: off, End: end}

	trimmed := strings.TrimRight(line, " \t")
	if strings.TrimLeft(trimmed, " \t") == "" {
		*rows = append(*rows, Row{Kind: RowBlank, Line: lineNum, Span: span})
		return
	}

	stripped := strings.TrimLeft(trimmed, " \t")
	if strings.HasPrefix(stripped, "***") {
		indent := len(trimmed) - len(stripped)
		cell := RawCell{
			Text:  stripped,
			Col:   uint32(indent) + 1,
			Start: off + uint32(indent),
			End:   off + uint32(len(trimmed)),
		}
		*rows = append(*rows, Row{Kind: RowSectionHeader, Line: lineNum, Cells: []RawCell{cell}, Span: span})
		return
	}

	if isPipeRow(trimmed) {
		lx.sawPipe = true
		lx.checkMixed(span)
		row := lx.scanPipeRow(trimmed, lineNum, off, span)
		*rows = append(*rows, row)
		return
	}

	lx.sawSpace = true
	lx.checkMixed(span)
	row := lx.scanSpaceRow(trimmed, lineNum, off, span)
	*rows = append(*rows, row)
}

// checkMixed reports once per file when pipe and space rows are mixed.
func (lx *Lexer) checkMixed(span source.Span) {
	if lx.reported || !lx.sawPipe || !lx.sawSpace {
		return
	}
	lx.reported = true
	lx.report(diag.LexMixedSeparators, diag.SevWarning, span,
		"file mixes pipe-separated and space-separated rows")
}

func isPipeRow(line string) bool {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "|") {
		return false
	}
	return len(s) == 1 || s[1] == ' ' || s[1] == '\t'
}

// scanSpaceRow splits a line on tabs and runs of two or more spaces.
// A single space is part of the cell text.
func (lx *Lexer) scanSpaceRow(line string, lineNum uint32, off uint32, span source.Span) Row {
	row := Row{Kind: RowStatement, Line: lineNum, Span: span}

	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	row.Indented = i > 0

	for i < len(line) {
		start := i
		if line[i] == '#' {
			// comment runs to end of line, inner spacing preserved
			row.Cells = append(row.Cells, RawCell{
				Text:  line[start:],
				Col:   uint32(start) + 1,
				Start: off + uint32(start),
				End:   off + uint32(len(line)),
			})
			break
		}
		for i < len(line) {
			if line[i] == '\t' {
				break
			}
			if line[i] == ' ' && i+1 < len(line) && line[i+1] == ' ' {
				break
			}
			if line[i] == ' ' && i+1 < len(line) && line[i+1] == '\t' {
				break
			}
			if line[i] == ' ' && i+1 == len(line) {
				break
			}
			i++
		}
		row.Cells = append(row.Cells, RawCell{
			Text:  line[start:i],
			Col:   uint32(start) + 1,
			Start: off + uint32(start),
			End:   off + uint32(i),
		})
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}
	return row
}

// scanPipeRow splits "| a | b |" style rows. The trailing pipe is optional;
// an empty leading field marks an indented row.
func (lx *Lexer) scanPipeRow(line string, lineNum uint32, off uint32, span source.Span) Row {
	row := Row{Kind: RowStatement, Line: lineNum, Span: span, Pipe: true}

	lead := 0
	for lead < len(line) && (line[lead] == ' ' || line[lead] == '\t') {
		lead++
	}
	i := lead + 1 // past the opening '|'

	first := true
	for i <= len(line) {
		// skip one separating space after the pipe
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '|' {
			// empty field: leading one marks indentation, others are dropped
			if first {
				row.Indented = true
			}
			first = false
			i++
			continue
		}
		start := i
		if line[i] == '#' {
			row.Cells = append(row.Cells, RawCell{
				Text:  strings.TrimRight(line[start:], " \t|"),
				Col:   uint32(start) + 1,
				Start: off + uint32(start),
				End:   off + uint32(len(line)),
			})
			break
		}
		// cell runs until " | " boundary or end of line
		cellEnd := -1
		for j := i; j < len(line); j++ {
			if line[j] == '|' && j > i && (line[j-1] == ' ' || line[j-1] == '\t') &&
				(j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t') {
				cellEnd = j
				break
			}
		}
		var text string
		if cellEnd < 0 {
			text = strings.TrimRight(line[start:], " \t")
			i = len(line) + 1
		} else {
			text = strings.TrimRight(line[start:cellEnd], " \t")
			i = cellEnd + 1
		}
		if text == "" {
			if first {
				row.Indented = true
			}
			first = false
			continue
		}
		endOff := off + uint32(start+len(text))
		row.Cells = append(row.Cells, RawCell{
			Text:  text,
			Col:   uint32(start) + 1,
			Start: off + uint32(start),
			End:   endOff,
		})
		first = false
	}
	if len(row.Cells) == 0 {
		row.Kind = RowBlank
	}
	return row
}
