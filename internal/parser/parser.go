// Package parser assembles lexer rows into the table model: sections, cases,
// statements, and the nested block tree for FOR/IF/WHILE/TRY constructs.
package parser

import (
	"strings"

	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

// ParseFile scans and parses one source file. The parser never fails hard:
// malformed structure is reported through opts.Reporter and the surrounding
// content is preserved in the model.
func ParseFile(sf *source.File, opts Options) *table.File {
	p := &parser{sf: sf, opts: opts}
	rows := lexer.New(sf, lexer.Options{Reporter: opts.Reporter}).Scan()
	return p.parse(rows)
}

type sectionState struct {
	section *table.Section
	// stack of open blocks inside the current case; stack[0] is the case body
	stack []*table.Block
	// last non-continuation statement appended, for continuation role choice
	lastRoles []table.Role
	blank     bool
}

func (p *parser) parse(rows []lexer.Row) *table.File {
	file := &table.File{Path: p.sf.Path, ID: p.sf.ID}

	st := sectionState{}
	for _, row := range rows {
		switch row.Kind {
		case lexer.RowBlank:
			st.blank = true
		case lexer.RowSectionHeader:
			p.closeCase(&st)
			file.Sections = append(file.Sections, p.newSection(row))
			st = sectionState{section: &file.Sections[len(file.Sections)-1]}
		case lexer.RowStatement:
			p.statementRow(file, &st, row)
		}
	}
	p.closeCase(&st)
	return file
}

func (p *parser) newSection(row lexer.Row) table.Section {
	name := sectionName(row.Cells[0].Text)
	kind := table.SectionUnknown
	switch name {
	case "settings", "setting":
		kind = table.SectionSettings
	case "variables", "variable":
		kind = table.SectionVariables
	case "test cases", "test case", "tasks", "task":
		kind = table.SectionTestCases
	case "keywords", "keyword":
		kind = table.SectionKeywords
	case "comments", "comment":
		kind = table.SectionComments
	default:
		p.report(diag.SynUnknownSection, diag.SevWarning, row.Span,
			"unknown section header "+row.Cells[0].Text)
	}
	header := table.Statement{
		Cells: []table.Cell{{Text: row.Cells[0].Text, Role: table.RoleName, Col: row.Cells[0].Col}},
		Line:  row.Line,
		Span:  row.Span,
	}
	return table.Section{Kind: kind, Header: header}
}

// sectionName normalizes "*** Test Cases ***" to "test cases".
func sectionName(text string) string {
	s := strings.Trim(text, "*")
	return strings.ToLower(strings.TrimSpace(s))
}

func (p *parser) statementRow(file *table.File, st *sectionState, row lexer.Row) {
	if st.section == nil {
		// rows before the first header go into an implicit comments section
		if !rowIsComment(row) {
			p.report(diag.SynStatementBeforeCase, diag.SevWarning, row.Span,
				"statement before the first section header")
		}
		file.Sections = append(file.Sections, table.Section{Kind: table.SectionComments})
		st.section = &file.Sections[len(file.Sections)-1]
	}

	sec := st.section
	switch sec.Kind {
	case table.SectionComments, table.SectionUnknown:
		p.rawStatement(st, row)
	case table.SectionSettings:
		p.appendStatement(st, &sec.Body, row, p.settingCells(row, table.RoleSettingValue))
	case table.SectionVariables:
		p.appendStatement(st, &sec.Body, row, p.settingCells(row, table.RoleSettingValue))
	case table.SectionTestCases, table.SectionKeywords:
		p.caseRow(st, row)
	}
}

// rawStatement preserves a comments-section line verbatim as one comment cell.
func (p *parser) rawStatement(st *sectionState, row lexer.Row) {
	text := lineText(p.sf, row.Span)
	stmt := table.Statement{
		Cells:       []table.Cell{{Text: text, Role: table.RoleComment, Col: 1}},
		BlankBefore: st.blank,
		Line:        row.Line,
		Span:        row.Span,
	}
	st.blank = false
	st.section.Body.AddStatement(stmt)
}

func lineText(sf *source.File, sp source.Span) string {
	if sf == nil || int(sp.End) > len(sf.Content) || sp.Start > sp.End {
		return ""
	}
	return strings.TrimRight(string(sf.Content[sp.Start:sp.End]), " \t")
}

func (p *parser) caseRow(st *sectionState, row lexer.Row) {
	sec := st.section
	if !row.Indented {
		p.closeCase(st)
		sec.Cases = append(sec.Cases, table.Case{
			Name: table.Statement{
				Cells:       p.nameCells(row),
				BlankBefore: st.blank,
				Line:        row.Line,
				Span:        row.Span,
			},
		})
		st.blank = false
		body := &sec.Cases[len(sec.Cases)-1].Body
		body.Kind = table.BlockBody
		body.Level = 1
		st.stack = []*table.Block{body}
		st.lastRoles = nil
		return
	}

	if len(st.stack) == 0 {
		// indented row before any case name: keep it with the section
		if !rowIsComment(row) {
			p.report(diag.SynStatementBeforeCase, diag.SevWarning, row.Span,
				"indented row before the first case name")
		}
		p.appendStatement(st, &sec.Body, row, p.stepCells(row, st))
		return
	}

	p.blockRow(st, row)
}

// closeCase reports blocks left open by a missing END and resets case state.
func (p *parser) closeCase(st *sectionState) {
	if len(st.stack) > 1 {
		for i := len(st.stack) - 1; i > 0; i-- {
			p.report(diag.SynMissingEnd, diag.SevError, source.Span{File: p.sf.ID},
				st.stack[i].Kind.String()+" block is missing END")
		}
	}
	st.stack = nil
	st.lastRoles = nil
}

func (p *parser) appendStatement(st *sectionState, b *table.Block, row lexer.Row, cells []table.Cell) {
	stmt := table.Statement{
		Cells:        cells,
		Continuation: row.IsContinuation(),
		BlankBefore:  st.blank,
		Line:         row.Line,
		Span:         row.Span,
	}
	st.blank = false
	if !stmt.Continuation {
		st.lastRoles = rolesOf(cells)
	}
	b.AddStatement(stmt)
}

func rowIsComment(row lexer.Row) bool {
	return len(row.Cells) > 0 && strings.HasPrefix(row.Cells[0].Text, "#")
}

func rolesOf(cells []table.Cell) []table.Role {
	out := make([]table.Role, len(cells))
	for i, c := range cells {
		out[i] = c.Role
	}
	return out
}
