// Package align implements the column-alignment and line-layout engine:
// per-block column width computation, overflow resolution, line splitting,
// and block rendering.
//
// Назначение: превратить дерево блоков в готовые строки с выравненными
// колонками. Не делает: разбора текста, записи файлов, диагностик правил.
package align

import (
	"errors"
	"fmt"
)

// Mode selects how column widths are computed.
type Mode uint8

const (
	// ModeFixed uses the configured widths as-is.
	ModeFixed Mode = iota
	// ModeAuto derives widths from the longest cell present, capped by the
	// configured widths.
	ModeAuto
)

func (m Mode) String() string {
	if m == ModeAuto {
		return "auto"
	}
	return "fixed"
}

// ParseMode parses a mode name from configuration.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fixed", "":
		return ModeFixed, nil
	case "auto":
		return ModeAuto, nil
	}
	return ModeFixed, fmt.Errorf("align: unknown alignment_type %q", s)
}

// Policy decides what happens with a cell that does not fit its column.
type Policy uint8

const (
	// PolicyOverflow lets the cell consume as many column slots as it needs.
	PolicyOverflow Policy = iota
	// PolicyCompactOverflow tries to pull the next cell into the slack after
	// an overflowing cell before falling back to PolicyOverflow.
	PolicyCompactOverflow
	// PolicyIgnoreRest stops aligning the statement at the first overflow.
	PolicyIgnoreRest
	// PolicyIgnoreLine re-emits the whole statement with flat separators.
	PolicyIgnoreLine
)

func (p Policy) String() string {
	switch p {
	case PolicyCompactOverflow:
		return "compact_overflow"
	case PolicyIgnoreRest:
		return "ignore_rest"
	case PolicyIgnoreLine:
		return "ignore_line"
	}
	return "overflow"
}

// ParsePolicy parses an overflow policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "overflow", "":
		return PolicyOverflow, nil
	case "compact_overflow":
		return PolicyCompactOverflow, nil
	case "ignore_rest":
		return PolicyIgnoreRest, nil
	case "ignore_line":
		return PolicyIgnoreLine, nil
	}
	return PolicyOverflow, fmt.Errorf("align: unknown handle_too_long %q", s)
}

// Config is the immutable configuration bundle of one alignment pass.
// Построен один раз на запуск; никогда не мутируется.
type Config struct {
	// Widths are per-column caps; the last value repeats for all higher
	// columns; 0 means unbounded.
	Widths []int
	Mode   Mode
	Policy Policy
	// CompactLimit caps consecutive compact placements (>= 1).
	CompactLimit int

	AlignComments           bool
	AlignSettingsSeparately bool

	// UpToColumn limits alignment to the first N columns (0 = all).
	UpToColumn int
	// FixedWidth, when > 0, forces every column to exactly this width.
	FixedWidth int
	// MinWidth, when > 0, is the lower bound for auto-computed widths.
	MinWidth int

	LineLength         int
	SpaceCount         int // flat inter-cell separator width
	Indent             int
	ContinuationIndent int

	AlignNewLine           bool
	SplitOnEveryArg        bool
	SplitOnEveryValue      bool
	SplitOnEverySettingArg bool
	SkipComments           bool
}

// Default returns the stock configuration: fixed 24-wide columns, plain
// overflow, 120-character budget.
func Default() Config {
	return Config{
		Widths:             []int{24},
		Mode:               ModeFixed,
		Policy:             PolicyOverflow,
		CompactLimit:       2,
		AlignComments:      true,
		LineLength:         120,
		SpaceCount:         4,
		Indent:             4,
		ContinuationIndent: 4,
		SplitOnEveryArg:    true,
	}
}

// Validate rejects policy conflicts before any file is touched.
func (c *Config) Validate() error {
	if c.Mode == ModeFixed && len(c.Widths) == 0 && c.FixedWidth == 0 {
		return errors.New("align: fixed mode requires a non-empty widths list")
	}
	for i, w := range c.Widths {
		if w < 0 {
			return fmt.Errorf("align: widths[%d] is negative", i)
		}
	}
	if c.Policy == PolicyCompactOverflow && c.CompactLimit < 1 {
		return errors.New("align: compact_overflow_limit must be at least 1")
	}
	if c.LineLength < 1 {
		return errors.New("align: line_length must be positive")
	}
	if c.SpaceCount < 2 {
		return errors.New("align: space_count below 2 would merge adjacent cells")
	}
	if c.Indent < 1 {
		return errors.New("align: indent must be positive")
	}
	if c.ContinuationIndent < 2 {
		return errors.New("align: continuation_indent below 2 would merge the marker into the next cell")
	}
	if c.UpToColumn < 0 || c.FixedWidth < 0 || c.MinWidth < 0 {
		return errors.New("align: column size options must not be negative")
	}
	return nil
}
