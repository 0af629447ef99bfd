package align

import (
	"strings"
	"testing"

	"tabtidy/internal/table"
)

func addStmt(b *table.Block, texts ...string) *table.Statement {
	s := stmt(texts...)
	b.AddStatement(*s)
	return s
}

func TestRenderBlockAuto(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "First Keyword", "arg")
	addStmt(root, "FOR", "${i}", "IN", "@{list}")
	body := root.AddChild(table.BlockFor)
	addStmt(body, "Log", "msg")
	addStmt(body, "Another Keyword", "x")
	addStmt(root, "END")

	got := RenderBlock(root, &cfg, true)
	want := []string{
		"    First Keyword    arg",
		"    FOR              ${i}    IN    @{list}",
		"        Log                msg",
		"        Another Keyword    x",
		"    END",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("render mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestRenderBlockSplitsAndRealigns(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 40

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "Keyword", "aaaa", "bbbb", "cccc")

	got := RenderBlock(root, &cfg, true)
	want := []string{
		"    Keyword",
		"    ..." + sp(21) + "aaaa",
		"    ..." + sp(21) + "bbbb",
		"    ..." + sp(21) + "cccc",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("split render mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
	for _, line := range got {
		if cellWidth(line) > cfg.LineLength {
			t.Fatalf("line over budget after split: %q", line)
		}
	}
}

// rendering already-rendered content must not change it further
func TestRenderBlockIdempotent(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 40

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "Keyword", "aaaa", "bbbb", "cccc")
	addStmt(root, "Short", "x")

	first := RenderBlock(root, &cfg, true)
	second := RenderBlock(reparse(first), &cfg, true)
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Fatalf("second pass changed output:\nfirst:\n%s\nsecond:\n%s",
			strings.Join(first, "\n"), strings.Join(second, "\n"))
	}
}

// reparse rebuilds a flat block from rendered lines: cells are separated by
// two or more spaces, a leading marker makes the row a continuation.
func reparse(lines []string) *table.Block {
	b := &table.Block{Kind: table.BlockBody, Level: 1}
	for _, line := range lines {
		var cells []string
		for _, f := range strings.Split(strings.TrimLeft(line, " "), "  ") {
			if f = strings.TrimSpace(f); f != "" {
				cells = append(cells, f)
			}
		}
		if len(cells) == 0 {
			continue
		}
		b.AddStatement(*stmt(cells...))
	}
	return b
}

func TestRenderBlockFlat(t *testing.T) {
	cfg := Default()

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "Keyword", "a", "b")
	addStmt(root, "...", "c")

	got := RenderBlock(root, &cfg, false)
	want := []string{
		"    Keyword    a    b",
		"    ...    c",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("flat render mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestRenderBlockFlatAlignNewLine(t *testing.T) {
	cfg := Default()
	cfg.AlignNewLine = true

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "Keyword", "a")
	addStmt(root, "...", "c")

	got := RenderBlock(root, &cfg, false)
	// the continuation cell lines up under the head line's first argument
	want := []string{
		"    Keyword    a",
		"    ..." + sp(8) + "c",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("align_new_line mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestRenderBlockBlankBefore(t *testing.T) {
	cfg := Default()

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "First")
	s := stmt("Second")
	s.BlankBefore = true
	root.AddStatement(*s)

	got := RenderBlock(root, &cfg, true)
	want := []string{"    First", "", "    Second"}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("blank line mismatch: %q", got)
	}
}

func TestRenderBlockSettingsSeparately(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil
	cfg.AlignSettingsSeparately = true

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	root.AddStatement(table.Statement{Cells: []table.Cell{
		{Text: "[Documentation]", Role: table.RoleSettingName},
		{Text: "does things", Role: table.RoleSettingValue},
	}})
	addStmt(root, "Short", "arg")

	got := RenderBlock(root, &cfg, true)
	// the step column does not widen to the 15-wide setting name
	want := []string{
		"    [Documentation]    does things",
		"    Short    arg",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("settings grouping mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
}

func TestRenderBlockSettingsSeparatelySplitBudget(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil
	cfg.AlignSettingsSeparately = true
	cfg.LineLength = 56

	// настройка помещается в бюджет в своей группе колонок; широкий шаг
	// раздувает только группу шагов
	root := &table.Block{Kind: table.BlockBody, Level: 1}
	root.AddStatement(table.Statement{Cells: []table.Cell{
		{Text: "[Tags]", Role: table.RoleSettingName},
		{Text: "smoke", Role: table.RoleSettingValue},
		{Text: "extra", Role: table.RoleSettingValue},
	}})
	addStmt(root, "Very Long Keyword Name That Does Things", "arg")

	got := RenderBlock(root, &cfg, true)
	want := []string{
		"    [Tags]    smoke    extra",
		"    Very Long Keyword Name That Does Things    arg",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("settings split mismatch:\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
	for _, line := range got {
		if cellWidth(line) > cfg.LineLength {
			t.Fatalf("line over budget: %q", line)
		}
	}
}

func TestRenderBlockSkipCommentsSplitDecision(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 40
	cfg.SkipComments = true

	root := &table.Block{Kind: table.BlockBody, Level: 1}
	addStmt(root, "Keyword", "arg", "# this comment runs long")

	got := RenderBlock(root, &cfg, true)
	if len(got) != 1 {
		t.Fatalf("comment pushed a fitting statement into a split:\n%s", strings.Join(got, "\n"))
	}

	// с учётом комментария та же строка бюджет превышает
	cfg.SkipComments = false
	got = RenderBlock(root, &cfg, true)
	if len(got) < 2 {
		t.Fatalf("over-budget statement was not split:\n%s", strings.Join(got, "\n"))
	}
}
