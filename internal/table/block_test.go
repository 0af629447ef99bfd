package table

import (
	"testing"
)

func stmt(texts ...string) Statement {
	cells := make([]Cell, len(texts))
	for i, txt := range texts {
		role := RoleArgument
		if i == 0 {
			role = RoleName
		}
		cells[i] = Cell{Text: txt, Role: role}
	}
	return Statement{Cells: cells}
}

func TestBlock_StatementsExcludeChildren(t *testing.T) {
	root := Block{Kind: BlockBody, Level: 1}
	root.AddStatement(stmt("Log", "before"))
	root.AddStatement(stmt("FOR", "${i}", "IN RANGE", "10"))
	child := root.AddChild(BlockFor)
	child.AddStatement(stmt("Log", "inside the loop body"))
	root.AddStatement(stmt("END"))
	root.AddStatement(stmt("Log", "after"))

	direct := root.Statements()
	if len(direct) != 4 {
		t.Fatalf("direct statements = %d, want 4", len(direct))
	}
	for _, s := range direct {
		if len(s.Cells) > 1 && s.Cells[1].Text == "inside the loop body" {
			t.Fatalf("child statement leaked into parent scope")
		}
	}
	if child.Level != 2 {
		t.Errorf("child level = %d, want 2", child.Level)
	}
}

func TestBlock_WalkDepthFirst(t *testing.T) {
	root := Block{Kind: BlockBody, Level: 1}
	forBlock := root.AddChild(BlockFor)
	forBlock.AddChild(BlockIfBranch)
	root.AddChild(BlockWhile)

	var kinds []BlockKind
	root.Walk(func(b *Block) { kinds = append(kinds, b.Kind) })

	want := []BlockKind{BlockBody, BlockFor, BlockIfBranch, BlockWhile}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d blocks, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestStatement_CommentSplit(t *testing.T) {
	s := Statement{Cells: []Cell{
		{Text: "Log", Role: RoleName},
		{Text: "hello", Role: RoleArgument},
		{Text: "# why", Role: RoleComment},
	}}
	body, comments := s.CommentSplit()
	if len(body) != 2 || len(comments) != 1 {
		t.Fatalf("split = %d body, %d comments, want 2/1", len(body), len(comments))
	}
	if comments[0].Text != "# why" {
		t.Errorf("comment = %q", comments[0].Text)
	}
}
