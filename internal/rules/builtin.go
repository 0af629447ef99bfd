package rules

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

// LineTooLong reports physical lines wider than the configured budget.
// Width is display width, so tabs and wide runes count the way a terminal
// renders them.
type LineTooLong struct{}

func (LineTooLong) Code() diag.Code { return diag.RuleLineTooLong }

func (LineTooLong) Check(ctx *Context) {
	limit := ctx.Options.LineLength
	if limit <= 0 {
		return
	}
	eachLine(ctx.File, func(_ uint32, text string, sp source.Span) {
		if w := runewidth.StringWidth(text); w > limit {
			diag.ReportWarning(ctx.Reporter, diag.RuleLineTooLong, sp,
				fmt.Sprintf("line is %d characters wide, limit is %d", w, limit)).Emit()
		}
	})
}

// TrailingWhitespace reports trailing spaces and tabs, with an attached fix
// that deletes them.
type TrailingWhitespace struct{}

func (TrailingWhitespace) Code() diag.Code { return diag.RuleTrailingWhitespace }

func (TrailingWhitespace) Check(ctx *Context) {
	eachLine(ctx.File, func(_ uint32, text string, sp source.Span) {
		trimmed := strings.TrimRight(text, " \t")
		if len(trimmed) == len(text) {
			return
		}
		tail := source.Span{File: sp.File, Start: sp.Start + uint32(len(trimmed)), End: sp.End}
		diag.ReportWarning(ctx.Reporter, diag.RuleTrailingWhitespace, tail,
			"trailing whitespace").
			WithFix("remove trailing whitespace", diag.TextEdit{
				Span:    tail,
				OldText: text[len(trimmed):],
			}).
			Emit()
	})
}

// DuplicateName reports a test case or keyword whose normalized name was
// already defined in the same section. Normalization follows keyword-match
// semantics: case, spaces and underscores are ignored.
type DuplicateName struct{}

func (DuplicateName) Code() diag.Code { return diag.RuleDuplicateName }

func (DuplicateName) Check(ctx *Context) {
	for i := range ctx.Table.Sections {
		sec := &ctx.Table.Sections[i]
		if sec.Kind != table.SectionTestCases && sec.Kind != table.SectionKeywords {
			continue
		}
		seen := make(map[string]source.Span, len(sec.Cases))
		for j := range sec.Cases {
			name := &sec.Cases[j].Name
			if name.IsEmpty() {
				continue
			}
			key := normalizeName(name.Cells[0].Text)
			if first, ok := seen[key]; ok {
				diag.ReportWarning(ctx.Reporter, diag.RuleDuplicateName, name.Span,
					fmt.Sprintf("duplicate name %q", name.Cells[0].Text)).
					WithNote(first, "first defined here").
					Emit()
				continue
			}
			seen[key] = name.Span
		}
	}
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == ' ' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// EmptySection reports a section header with nothing under it.
type EmptySection struct{}

func (EmptySection) Code() diag.Code { return diag.RuleEmptySection }

func (EmptySection) Check(ctx *Context) {
	for i := range ctx.Table.Sections {
		sec := &ctx.Table.Sections[i]
		if sec.Header.IsEmpty() || len(sec.Cases) > 0 || !sec.Body.IsEmpty() {
			continue
		}
		diag.ReportWarning(ctx.Reporter, diag.RuleEmptySection, sec.Header.Span,
			"section "+sec.Header.Cells[0].Text+" is empty").Emit()
	}
}

// TooManySteps reports case bodies with more statements than allowed.
// Statements of nested blocks count; continuation rows do not.
type TooManySteps struct{}

func (TooManySteps) Code() diag.Code { return diag.RuleTooManySteps }

func (TooManySteps) Check(ctx *Context) {
	limit := ctx.Options.MaxSteps
	if limit <= 0 {
		return
	}
	for i := range ctx.Table.Sections {
		sec := &ctx.Table.Sections[i]
		for j := range sec.Cases {
			c := &sec.Cases[j]
			steps := 0
			c.Body.Walk(func(b *table.Block) {
				for _, s := range b.Statements() {
					if !s.Continuation && !s.IsCommentOnly() && !s.HasSettingCells() {
						steps++
					}
				}
			})
			if steps > limit {
				diag.ReportWarning(ctx.Reporter, diag.RuleTooManySteps, c.Name.Span,
					fmt.Sprintf("%q has %d steps, limit is %d", c.Name.Cells[0].Text, steps, limit)).Emit()
			}
		}
	}
}

// InconsistentCase reports test and keyword names that do not start with an
// upper-case letter.
type InconsistentCase struct{}

func (InconsistentCase) Code() diag.Code { return diag.RuleInconsistentCase }

func (InconsistentCase) Check(ctx *Context) {
	for i := range ctx.Table.Sections {
		sec := &ctx.Table.Sections[i]
		if sec.Kind != table.SectionTestCases && sec.Kind != table.SectionKeywords {
			continue
		}
		for j := range sec.Cases {
			name := &sec.Cases[j].Name
			if name.IsEmpty() {
				continue
			}
			first := []rune(name.Cells[0].Text)[0]
			if unicode.IsLetter(first) && unicode.IsLower(first) {
				diag.ReportWarning(ctx.Reporter, diag.RuleInconsistentCase, name.Span,
					fmt.Sprintf("name %q should start with an upper-case letter", name.Cells[0].Text)).Emit()
			}
		}
	}
}
