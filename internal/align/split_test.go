package align

import (
	"strings"
	"testing"

	"tabtidy/internal/table"
)

func texts(s *table.Statement) string {
	return strings.Join(s.Texts(), "|")
}

func TestSplitPerArg(t *testing.T) {
	cfg := Default()
	s := &table.Statement{Cells: []table.Cell{
		{Text: "${r} =", Role: table.RoleAssign},
		{Text: "Keyword", Role: table.RoleName},
		{Text: "a1", Role: table.RoleArgument},
		{Text: "a2", Role: table.RoleArgument},
	}}

	out := SplitStatement(s, &cfg, 4, true)
	if len(out) != 3 {
		t.Fatalf("got %d statements, want 3", len(out))
	}
	if got := texts(&out[0]); got != "${r} =|Keyword" {
		t.Fatalf("head = %q", got)
	}
	for i, want := range []string{"...|a1", "...|a2"} {
		cont := &out[i+1]
		if !cont.Continuation {
			t.Fatalf("statement %d not marked as continuation", i+1)
		}
		if got := texts(cont); got != want {
			t.Fatalf("continuation %d = %q, want %q", i+1, got, want)
		}
	}
}

func TestSplitAssignmentsOverBudget(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 12
	s := &table.Statement{Cells: []table.Cell{
		{Text: "${result} =", Role: table.RoleAssign},
		{Text: "Keyword", Role: table.RoleName},
		{Text: "a1", Role: table.RoleArgument},
	}}

	// assignment plus name exceed the budget: only the first cell stays on
	// the head line
	out := SplitStatement(s, &cfg, 0, true)
	if len(out) != 3 {
		t.Fatalf("got %d statements, want 3", len(out))
	}
	if got := texts(&out[0]); got != "${result} =" {
		t.Fatalf("head = %q", got)
	}
	if got := texts(&out[1]); got != "...|Keyword" {
		t.Fatalf("first continuation = %q", got)
	}
}

func TestSplitKeepsCommentsOnHead(t *testing.T) {
	cfg := Default()
	s := &table.Statement{Cells: []table.Cell{
		{Text: "Keyword", Role: table.RoleName},
		{Text: "arg", Role: table.RoleArgument},
		{Text: "# c", Role: table.RoleComment},
	}}

	out := SplitStatement(s, &cfg, 0, true)
	if len(out) != 2 {
		t.Fatalf("got %d statements, want 2", len(out))
	}
	if got := texts(&out[0]); got != "Keyword|# c" {
		t.Fatalf("head = %q", got)
	}
	if got := texts(&out[1]); got != "...|arg" {
		t.Fatalf("continuation = %q", got)
	}
}

func TestSplitPacking(t *testing.T) {
	cfg := Default()
	cfg.SplitOnEveryArg = false
	cfg.LineLength = 30
	s := stmt("Keyword", "aaaa", "bbbb", "cccc", "dddd")

	out := SplitStatement(s, &cfg, 0, false)
	want := []string{"Keyword", "...|aaaa|bbbb|cccc", "...|dddd"}
	if len(out) != len(want) {
		t.Fatalf("got %d statements, want %d", len(out), len(want))
	}
	for i := range want {
		if got := texts(&out[i]); got != want[i] {
			t.Fatalf("statement %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestSplitSettingArgsFlag(t *testing.T) {
	cfg := Default()
	cfg.SplitOnEveryArg = false
	cfg.SplitOnEverySettingArg = true
	s := &table.Statement{Cells: []table.Cell{
		{Text: "[Tags]", Role: table.RoleSettingName},
		{Text: "smoke", Role: table.RoleSettingValue},
		{Text: "slow", Role: table.RoleSettingValue},
	}}

	out := SplitStatement(s, &cfg, 0, false)
	if len(out) != 3 {
		t.Fatalf("got %d statements, want 3 (one value per line)", len(out))
	}
}

func TestSplitNeverTruncates(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 40
	huge := strings.Repeat("z", 200)
	s := stmt("Keyword", huge)

	out := SplitStatement(s, &cfg, 0, true)
	if len(out) != 2 {
		t.Fatalf("got %d statements, want 2", len(out))
	}
	if got := texts(&out[1]); got != "...|"+huge {
		t.Fatalf("oversized cell not kept intact: %q", got)
	}
}

func TestSplitSingleCellUnchanged(t *testing.T) {
	cfg := Default()
	s := stmt("OnlyName")
	out := SplitStatement(s, &cfg, 0, true)
	if len(out) != 1 || texts(&out[0]) != "OnlyName" {
		t.Fatalf("single-cell statement changed: %+v", out)
	}
}
