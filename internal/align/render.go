package align

import (
	"strings"

	"tabtidy/internal/table"
)

// RenderBlock renders a block tree into output lines, depth-first. Each
// block is an independent alignment scope: widths are computed from its
// direct statements only, then statements over the line budget are split
// and widths recomputed once against the new statement shape, so alignment
// and splitting converge on a single rendering.
//
// When aligned is false the block is emitted with flat separators only
// (plus line splitting), which is the layout used for sections where
// alignment is disabled.
func RenderBlock(b *table.Block, cfg *Config, aligned bool) []string {
	var out []string
	renderBlock(&out, b, cfg, aligned)
	return out
}

func renderBlock(out *[]string, b *table.Block, cfg *Config, aligned bool) {
	if b == nil || b.IsEmpty() {
		return
	}
	indentW := b.Level * cfg.Indent
	indent := strings.Repeat(" ", indentW)

	items := splitPass(b, cfg, indentW, aligned)

	var groups *columnGroups
	if aligned {
		groups = computeGroups(statementsOf(items), cfg)
	}

	headArgOffset := 0 // offset of the first argument of the last head line
	for i := range items {
		item := &items[i]
		if item.Kind == table.ItemBlock {
			renderBlock(out, item.Child, cfg, aligned)
			continue
		}
		s := &item.Stmt
		if s.BlankBefore && len(*out) > 0 {
			*out = append(*out, "")
		}
		var line string
		if aligned {
			line = LayoutStatement(s, groups.columnsFor(s), cfg)
		} else {
			line = flatLine(s, cfg, headArgOffset)
			if !s.Continuation {
				headArgOffset = 0
				if len(s.Cells) > 1 {
					headArgOffset = cellWidth(s.Cells[0].Text) + cfg.SpaceCount
				}
			}
		}
		*out = append(*out, strings.TrimRight(indent+line, " "))
	}
}

// splitPass returns the block's items with over-budget statements replaced
// by their split shapes. Widths used for the split decision come from the
// pre-split statement list; the caller recomputes them afterwards.
func splitPass(b *table.Block, cfg *Config, indentW int, aligned bool) []table.Item {
	var groups *columnGroups
	if aligned {
		groups = computeGroups(b.Statements(), cfg)
	}

	out := make([]table.Item, 0, len(b.Items))
	for i := range b.Items {
		// указатель в сам блок: группы колонок ключуются адресом statement
		item := &b.Items[i]
		if item.Kind == table.ItemBlock {
			out = append(out, *item)
			continue
		}
		s := &item.Stmt
		if s.Continuation || !needsSplit(s, groups, cfg, indentW, aligned) {
			out = append(out, *item)
			continue
		}
		parts := SplitStatement(s, cfg, indentW, aligned)
		for _, part := range parts {
			out = append(out, table.Item{Kind: table.ItemStatement, Stmt: part})
		}
	}
	return out
}

// needsSplit measures the statement's rendered width against the budget.
// With skip_comments set, trailing comments do not count.
func needsSplit(s *table.Statement, groups *columnGroups, cfg *Config, indentW int, aligned bool) bool {
	measured := s
	if cfg.SkipComments {
		body, _ := s.CommentSplit()
		measured = &table.Statement{Cells: body, Continuation: s.Continuation}
	}
	var line string
	if aligned {
		line = LayoutStatement(measured, groups.columnsFor(s), cfg)
	} else {
		line = flatLine(measured, cfg, 0)
	}
	return indentW+cellWidth(strings.TrimRight(line, " ")) > cfg.LineLength
}

// flatLine joins cells with the flat separator. Continuation rows indent
// their cells by continuation_indent after the marker, or under the head
// line's first argument when align_new_line is set.
func flatLine(s *table.Statement, cfg *Config, headArgOffset int) string {
	if !s.Continuation || len(s.Cells) < 2 {
		return flatJoin(s.Cells, cfg)
	}
	marker := s.Cells[0].Text
	rest := flatJoin(s.Cells[1:], cfg)
	if cfg.AlignNewLine && headArgOffset >= cellWidth(marker)+2 {
		return marker + strings.Repeat(" ", headArgOffset-cellWidth(marker)) + rest
	}
	gap := cfg.ContinuationIndent
	if gap < 2 {
		gap = cfg.SpaceCount
	}
	return marker + strings.Repeat(" ", gap) + rest
}

func statementsOf(items []table.Item) []*table.Statement {
	out := make([]*table.Statement, 0, len(items))
	for i := range items {
		if items[i].Kind == table.ItemStatement {
			out = append(out, &items[i].Stmt)
		}
	}
	return out
}

// columnGroups holds per-group column widths when settings are aligned
// separately from keyword steps. Continuation rows follow the group of the
// statement they continue.
type columnGroups struct {
	all      *Columns
	settings *Columns
	members  map[*table.Statement]*Columns
}

func computeGroups(stmts []*table.Statement, cfg *Config) *columnGroups {
	g := &columnGroups{}
	if !cfg.AlignSettingsSeparately {
		g.all = ComputeColumns(stmts, cfg)
		return g
	}

	g.members = make(map[*table.Statement]*Columns, len(stmts))
	var settings, steps []*table.Statement
	inSettings := false
	for _, s := range stmts {
		if !s.Continuation {
			inSettings = s.HasSettingCells()
		}
		if inSettings {
			settings = append(settings, s)
		} else {
			steps = append(steps, s)
		}
	}
	settingCols := ComputeColumns(settings, cfg)
	stepCols := ComputeColumns(steps, cfg)
	for _, s := range settings {
		g.members[s] = settingCols
	}
	for _, s := range steps {
		g.members[s] = stepCols
	}
	g.all = stepCols
	g.settings = settingCols
	return g
}

func (g *columnGroups) columnsFor(s *table.Statement) *Columns {
	if g.members == nil {
		return g.all
	}
	if cols, ok := g.members[s]; ok {
		return cols
	}
	return g.all
}
