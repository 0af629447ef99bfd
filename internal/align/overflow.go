package align

import (
	"strings"

	"tabtidy/internal/table"
)

// LayoutStatement renders one statement's cells into a single line (without
// indentation), padding each cell to its column width and resolving cells
// that do not fit according to the configured policy.
//
// Invariants: the last cell of a line is never padded, and no policy ever
// drops cell text — only whitespace differs between policies.
func LayoutStatement(s *table.Statement, cols *Columns, cfg *Config) string {
	cells := s.Cells
	var comments []table.Cell
	if !cfg.AlignComments {
		body, com := s.CommentSplit()
		cells, comments = body, com
	}

	if len(cells) == 0 {
		return flatJoin(comments, cfg)
	}

	var b strings.Builder
	pos := 0 // display offset; equals cols.Start(col) at the top of the loop
	col := 0
	run := 0 // consecutive compact placements

	i := 0
	for i < len(cells) {
		if cfg.UpToColumn > 0 && col >= cfg.UpToColumn {
			appendFlat(&b, cells[i:], cfg)
			i = len(cells)
			break
		}

		cell := cells[i]
		tw := cellWidth(cell.Text)
		w := cols.Width(col)
		last := i == len(cells)-1

		// a cell fits its slot when the text plus a two-space separator
		// stays inside it; one space would merge cells on a re-read
		if tw+2 <= w {
			if last {
				b.WriteString(cell.Text)
				pos += tw
			} else {
				b.WriteString(pad(cell.Text, w-tw))
				pos += w
			}
			col++
			i++
			run = 0
			continue
		}

		// the cell does not fit its column
		switch cfg.Policy {
		case PolicyIgnoreLine:
			// discard alignment decisions, re-emit with flat separators
			return flatJoin(s.Cells, cfg)

		case PolicyIgnoreRest:
			appendFlat(&b, cells[i:], cfg)
			i = len(cells)

		case PolicyCompactOverflow:
			if run < cfg.CompactLimit && i+1 < len(cells) {
				next := cells[i+1]
				nw := cellWidth(next.Text)
				gapStart := pos + tw + 2
				after := cols.Start(col + 2)
				if gapStart+nw+2 <= after {
					// compact placement: next cell slides into the slack
					b.WriteString(cell.Text)
					b.WriteString("  ")
					if i+1 == len(cells)-1 {
						b.WriteString(next.Text)
						pos = gapStart + nw
					} else {
						b.WriteString(pad(next.Text, after-gapStart-nw))
						pos = after
					}
					col += 2
					i += 2
					run++
					continue
				}
			}
			pos, col = overflowCell(&b, cell, cols, pos, last)
			i++
			run = 0

		default: // PolicyOverflow
			pos, col = overflowCell(&b, cell, cols, pos, last)
			i++
			run = 0
		}
	}

	if len(comments) > 0 {
		b.WriteString(strings.Repeat(" ", cfg.SpaceCount))
		b.WriteString(flatJoin(comments, cfg))
	}
	return b.String()
}

// overflowCell emits a cell that consumes as many column slots as its text
// needs: the next cell starts at the first column boundary past the text
// and its separator.
func overflowCell(b *strings.Builder, cell table.Cell, cols *Columns, pos int, last bool) (int, int) {
	tw := cellWidth(cell.Text)
	endText := pos + tw + 2
	next, boundary := cols.NextBoundary(endText)

	if last {
		b.WriteString(cell.Text)
		return pos + tw, next
	}
	b.WriteString(pad(cell.Text, boundary-pos-tw))
	return boundary, next
}

func pad(text string, spaces int) string {
	if spaces <= 0 {
		return text
	}
	return text + strings.Repeat(" ", spaces)
}

func flatJoin(cells []table.Cell, cfg *Config) string {
	if len(cells) == 0 {
		return ""
	}
	sep := strings.Repeat(" ", cfg.SpaceCount)
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// appendFlat writes the remaining cells with flat separators between them.
// The caller is already positioned at the start of the current column, so
// no leading separator is needed.
func appendFlat(b *strings.Builder, cells []table.Cell, cfg *Config) {
	sep := strings.Repeat(" ", cfg.SpaceCount)
	for i, c := range cells {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(c.Text)
	}
}
