package align

import (
	"tabtidy/internal/table"
)

// perCellSplit reports whether the statement must be split one cell per
// continuation line. Setting rows and variable values have their own flags;
// when column alignment is active the renderer forces per-cell splitting for
// every shape, since packed continuation lines have no defined column layout.
func perCellSplit(s *table.Statement, cfg *Config, aligned bool) bool {
	if aligned {
		return true
	}
	if s.HasSettingCells() {
		return cfg.SplitOnEverySettingArg
	}
	return cfg.SplitOnEveryArg
}

// SplitStatement rewrites a statement whose rendered width exceeds the line
// budget into a head statement plus continuation statements. Content is
// never dropped: a cell longer than the whole budget still gets its own
// continuation line, unsplit.
func SplitStatement(s *table.Statement, cfg *Config, indent int, aligned bool) []table.Statement {
	body, comments := s.CommentSplit()
	if len(body) < 2 {
		return []table.Statement{*s}
	}

	headLen := headCellCount(body)
	budget := cfg.LineLength - indent

	// if assignments plus name alone blow the budget, every assignment gets
	// its own continuation line; only the first cell stays on the head
	if flatWidth(body[:headLen], cfg) > budget {
		headLen = 1
	}

	head := table.Statement{
		Cells:        append([]table.Cell(nil), body[:headLen]...),
		Continuation: s.Continuation,
		BlankBefore:  s.BlankBefore,
		Line:         s.Line,
		Span:         s.Span,
	}
	head.Cells = append(head.Cells, comments...)

	out := []table.Statement{head}
	rest := body[headLen:]

	if perCellSplit(s, cfg, aligned) {
		for _, cell := range rest {
			out = append(out, continuationOf(s, cell))
		}
		return out
	}

	// packing: fill each continuation line while the next cell still fits
	contBudget := budget - cellWidth(table.ContinuationMarker) - cfg.ContinuationIndent
	var cur []table.Cell
	curWidth := 0
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, continuationOf(s, cur...))
		cur, curWidth = nil, 0
	}
	for _, cell := range rest {
		w := cellWidth(cell.Text)
		lineW := curWidth + cfg.SpaceCount + w
		if len(cur) > 0 && lineW > contBudget {
			flush()
		}
		if len(cur) > 0 {
			curWidth += cfg.SpaceCount
		}
		cur = append(cur, cell)
		curWidth += w
	}
	flush()
	return out
}

// headCellCount returns how many leading cells belong on the head line:
// assignments plus the name, or the setting name. Assignment cells are never
// pushed to continuation lines before the name is.
func headCellCount(cells []table.Cell) int {
	n := 0
	for i, c := range cells {
		switch c.Role {
		case table.RoleAssign, table.RoleContinuation:
			n = i + 1
		case table.RoleName, table.RoleSettingName:
			return i + 1
		default:
			return max(n, 1)
		}
	}
	return max(n, 1)
}

func continuationOf(s *table.Statement, cells ...table.Cell) table.Statement {
	out := table.Statement{
		Cells:        make([]table.Cell, 0, len(cells)+1),
		Continuation: true,
		Line:         s.Line,
		Span:         s.Span,
	}
	out.Cells = append(out.Cells, table.Cell{Text: table.ContinuationMarker, Role: table.RoleContinuation})
	out.Cells = append(out.Cells, cells...)
	return out
}

// flatWidth is the display width of cells joined with the flat separator.
func flatWidth(cells []table.Cell, cfg *Config) int {
	w := 0
	for i, c := range cells {
		if i > 0 {
			w += cfg.SpaceCount
		}
		w += cellWidth(c.Text)
	}
	return w
}
