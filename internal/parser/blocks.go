package parser

import (
	"tabtidy/internal/diag"
	"tabtidy/internal/lexer"
	"tabtidy/internal/table"
)

// blockRow routes one indented row inside a case body: block keywords
// open/close nested blocks, everything else is a plain step of the
// innermost open block.
//
// Block headers, branch markers (ELSE, EXCEPT, ...) and END are direct
// statements of the surrounding block; only the nested body goes into the
// child block. That keeps every block an independent alignment scope.
func (p *parser) blockRow(st *sectionState, row lexer.Row) {
	top := st.stack[len(st.stack)-1]

	if row.IsContinuation() {
		p.appendStatement(st, top, row, p.continuationCells(row, st))
		return
	}

	switch row.Cells[0].Text {
	case "FOR":
		p.openBlock(st, row, table.BlockFor)
	case "WHILE":
		p.openBlock(st, row, table.BlockWhile)
	case "IF":
		p.openBlock(st, row, table.BlockIfBranch)
	case "TRY":
		p.openBlock(st, row, table.BlockTryBranch)
	case "ELSE", "ELSE IF":
		p.branchRow(st, row, table.BlockIfBranch, table.BlockTryBranch)
	case "EXCEPT", "FINALLY":
		p.branchRow(st, row, table.BlockTryBranch)
	case "END":
		p.endRow(st, row)
	default:
		p.appendStatement(st, top, row, p.stepCells(row, st))
	}
}

func (p *parser) openBlock(st *sectionState, row lexer.Row, kind table.BlockKind) {
	top := st.stack[len(st.stack)-1]
	p.appendStatement(st, top, row, p.stepCells(row, st))
	st.stack = append(st.stack, top.AddChild(kind))
}

// branchRow closes the current branch and opens a sibling one. The marker
// row itself belongs to the parent block, like the header does.
func (p *parser) branchRow(st *sectionState, row lexer.Row, allowed ...table.BlockKind) {
	top := st.stack[len(st.stack)-1]
	ok := false
	for _, k := range allowed {
		if top.Kind == k {
			ok = true
			break
		}
	}
	if !ok || len(st.stack) < 2 {
		p.report(diag.SynOrphanBranch, diag.SevWarning, row.Span,
			row.Cells[0].Text+" outside of a matching block")
		p.appendStatement(st, top, row, p.stepCells(row, st))
		return
	}

	st.stack = st.stack[:len(st.stack)-1]
	parent := st.stack[len(st.stack)-1]
	p.appendStatement(st, parent, row, p.stepCells(row, st))
	st.stack = append(st.stack, parent.AddChild(top.Kind))
}

func (p *parser) endRow(st *sectionState, row lexer.Row) {
	if len(st.stack) < 2 {
		p.report(diag.SynUnexpectedEnd, diag.SevWarning, row.Span,
			"END without an open block")
		top := st.stack[len(st.stack)-1]
		p.appendStatement(st, top, row, p.stepCells(row, st))
		return
	}
	st.stack = st.stack[:len(st.stack)-1]
	parent := st.stack[len(st.stack)-1]
	p.appendStatement(st, parent, row, p.stepCells(row, st))
}
