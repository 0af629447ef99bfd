package align

import (
	"testing"

	"tabtidy/internal/table"
)

func stmt(texts ...string) *table.Statement {
	s := &table.Statement{}
	for i, text := range texts {
		role := table.RoleArgument
		switch {
		case i == 0 && text == table.ContinuationMarker:
			role = table.RoleContinuation
			s.Continuation = true
		case i == 0:
			role = table.RoleName
		case len(text) > 0 && text[0] == '#':
			role = table.RoleComment
		}
		s.Cells = append(s.Cells, table.Cell{Text: text, Role: role})
	}
	return s
}

func TestComputeColumnsAuto(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil

	stmts := []*table.Statement{
		stmt("Keyword One", "arg"),
		stmt("X", "yy"),
		stmt("...", "zzzzzz"),
	}
	cols := ComputeColumns(stmts, &cfg)

	if got := cols.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	// col 0 sizes to the longest name; the continuation marker reserves the
	// column but adds no width
	if got := cols.Width(0); got != 15 {
		t.Fatalf("Width(0) = %d, want 15", got)
	}
	if got := cols.Width(1); got != 10 {
		t.Fatalf("Width(1) = %d, want 10", got)
	}
	// columns past the computed range repeat the last width
	if got := cols.Width(5); got != 10 {
		t.Fatalf("Width(5) = %d, want 10", got)
	}
}

func TestComputeColumnsAutoCapAndMin(t *testing.T) {
	stmts := []*table.Statement{stmt("Keyword One", "arg")}

	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = []int{12}
	cols := ComputeColumns(stmts, &cfg)
	if got := cols.Width(0); got != 12 {
		t.Fatalf("capped Width(0) = %d, want 12", got)
	}

	cfg = Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil
	cfg.MinWidth = 20
	cols = ComputeColumns(stmts, &cfg)
	if got := cols.Width(1); got != 20 {
		t.Fatalf("min Width(1) = %d, want 20", got)
	}
}

func TestComputeColumnsFixed(t *testing.T) {
	stmts := []*table.Statement{stmt("Name", "a", "b", "c")}

	cfg := Default()
	cfg.Widths = []int{10, 20}
	cols := ComputeColumns(stmts, &cfg)
	for col, want := range map[int]int{0: 10, 1: 20, 3: 20} {
		if got := cols.Width(col); got != want {
			t.Fatalf("Width(%d) = %d, want %d", col, got, want)
		}
	}

	cfg.FixedWidth = 30
	cols = ComputeColumns(stmts, &cfg)
	if got := cols.Width(2); got != 30 {
		t.Fatalf("fixed_width Width(2) = %d, want 30", got)
	}
}

func TestComputeColumnsEmptyColumn(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil

	s := stmt("a", "", "b")
	cols := ComputeColumns([]*table.Statement{s}, &cfg)
	// no text in column 1: the slot shrinks to the separator width
	if got := cols.Width(1); got != cfg.SpaceCount {
		t.Fatalf("Width(1) = %d, want %d", got, cfg.SpaceCount)
	}
}

func TestComputeColumnsExcludesComments(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil
	cfg.AlignComments = false

	stmts := []*table.Statement{stmt("Log", "# a very long trailing comment")}
	cols := ComputeColumns(stmts, &cfg)
	if got := cols.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1 (comment excluded)", got)
	}
}

func TestStartAndNextBoundary(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModeAuto
	cfg.Widths = nil
	cols := ComputeColumns([]*table.Statement{
		stmt("Keyword One", "arg"),
		stmt("X", "zzzzzz"),
	}, &cfg) // widths 15, 10

	if got := cols.Start(2); got != 25 {
		t.Fatalf("Start(2) = %d, want 25", got)
	}
	tests := []struct {
		off       int
		col, next int
	}{
		{0, 0, 0},
		{15, 1, 15},
		{16, 2, 25},
		{25, 2, 25},
	}
	for _, tt := range tests {
		col, start := cols.NextBoundary(tt.off)
		if col != tt.col || start != tt.next {
			t.Fatalf("NextBoundary(%d) = (%d, %d), want (%d, %d)", tt.off, col, start, tt.col, tt.next)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fixed without widths", func(c *Config) { c.Widths = nil }},
		{"negative width", func(c *Config) { c.Widths = []int{24, -1} }},
		{"compact limit zero", func(c *Config) { c.Policy = PolicyCompactOverflow; c.CompactLimit = 0 }},
		{"line length zero", func(c *Config) { c.LineLength = 0 }},
		{"space count one", func(c *Config) { c.SpaceCount = 1 }},
		{"indent zero", func(c *Config) { c.Indent = 0 }},
		{"continuation indent one", func(c *Config) { c.ContinuationIndent = 1 }},
		{"negative up_to_column", func(c *Config) { c.UpToColumn = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() accepted invalid config")
			}
		})
	}
}

func TestParseModeAndPolicy(t *testing.T) {
	if m, err := ParseMode("auto"); err != nil || m != ModeAuto {
		t.Fatalf("ParseMode(auto) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeFixed {
		t.Fatalf("ParseMode(empty) = %v, %v", m, err)
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Fatalf("ParseMode(bogus) accepted")
	}

	for name, want := range map[string]Policy{
		"":                 PolicyOverflow,
		"overflow":         PolicyOverflow,
		"compact_overflow": PolicyCompactOverflow,
		"ignore_rest":      PolicyIgnoreRest,
		"ignore_line":      PolicyIgnoreLine,
	} {
		got, err := ParsePolicy(name)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %v, %v, want %v", name, got, err, want)
		}
	}
	if _, err := ParsePolicy("bogus"); err == nil {
		t.Fatalf("ParsePolicy(bogus) accepted")
	}
}
