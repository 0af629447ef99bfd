package parser

import (
	"strings"

	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/table"
)

// nameCells tags a case-definition row: the name, optional template
// arguments, and a trailing comment.
func (p *parser) nameCells(row lexer.Row) []table.Cell {
	cells := make([]table.Cell, 0, len(row.Cells))
	for i, rc := range row.Cells {
		role := table.RoleArgument
		switch {
		case strings.HasPrefix(rc.Text, "#"):
			role = table.RoleComment
		case i == 0:
			role = table.RoleName
		}
		cells = append(cells, table.Cell{Text: rc.Text, Role: role, Col: rc.Col})
	}
	return cells
}

// settingCells tags a settings- or variables-section row.
func (p *parser) settingCells(row lexer.Row, valueRole table.Role) []table.Cell {
	cells := make([]table.Cell, 0, len(row.Cells))
	seenName := false
	for i, rc := range row.Cells {
		var role table.Role
		switch {
		case strings.HasPrefix(rc.Text, "#"):
			role = table.RoleComment
		case i == 0 && rc.Text == table.ContinuationMarker:
			role = table.RoleContinuation
		case !seenName:
			role = table.RoleSettingName
			seenName = true
		case rc.Text == "AS" || rc.Text == "WITH NAME":
			role = table.RoleWithName
		default:
			role = valueRole
		}
		cells = append(cells, table.Cell{Text: rc.Text, Role: role, Col: rc.Col})
	}
	return cells
}

// stepCells tags a body row: optional assignment cells, the keyword name,
// arguments, and a trailing comment. Bracket settings like [Arguments] get
// setting roles so they can be aligned separately.
func (p *parser) stepCells(row lexer.Row, st *sectionState) []table.Cell {
	cells := make([]table.Cell, 0, len(row.Cells))
	nameSeen := false
	bracket := false
	for i, rc := range row.Cells {
		var role table.Role
		switch {
		case strings.HasPrefix(rc.Text, "#"):
			role = table.RoleComment
		case i == 0 && strings.HasPrefix(rc.Text, "[") && strings.HasSuffix(rc.Text, "]"):
			role = table.RoleSettingName
			bracket = true
			nameSeen = true
		case bracket:
			role = table.RoleSettingValue
		case !nameSeen && isAssignCell(rc.Text) && hasLaterName(row, i):
			role = table.RoleAssign
		case !nameSeen:
			role = table.RoleName
			nameSeen = true
		default:
			role = table.RoleArgument
		}
		cells = append(cells, table.Cell{Text: rc.Text, Role: role, Col: rc.Col})
	}
	return cells
}

// continuationCells tags a "..." row. Value roles follow the statement the
// row continues: setting rows continue with setting values.
func (p *parser) continuationCells(row lexer.Row, st *sectionState) []table.Cell {
	valueRole := table.RoleArgument
	if len(st.lastRoles) > 0 && st.lastRoles[0] == table.RoleSettingName {
		valueRole = table.RoleSettingValue
	}
	if st.lastRoles == nil {
		p.report(diag.LexDanglingEllipsis, diag.SevWarning, row.Span,
			"continuation row has no statement to continue")
	}

	cells := make([]table.Cell, 0, len(row.Cells))
	for i, rc := range row.Cells {
		var role table.Role
		switch {
		case i == 0:
			role = table.RoleContinuation
		case strings.HasPrefix(rc.Text, "#"):
			role = table.RoleComment
		default:
			role = valueRole
		}
		cells = append(cells, table.Cell{Text: rc.Text, Role: role, Col: rc.Col})
	}
	return cells
}

// isAssignCell matches "${x}", "@{x}", "&{x}" with an optional "=" suffix.
func isAssignCell(text string) bool {
	t := strings.TrimSuffix(text, "=")
	t = strings.TrimRight(t, " ")
	if len(t) < 3 {
		return false
	}
	if t[0] != '$' && t[0] != '@' && t[0] != '&' {
		return false
	}
	return t[1] == '{' && strings.HasSuffix(t, "}")
}

// hasLaterName reports whether a non-comment cell follows index i, so the
// assignment prefix still leaves a keyword name.
func hasLaterName(row lexer.Row, i int) bool {
	for j := i + 1; j < len(row.Cells); j++ {
		if !strings.HasPrefix(row.Cells[j].Text, "#") {
			return true
		}
	}
	return false
}
