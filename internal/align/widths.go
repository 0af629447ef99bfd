package align

import (
	"github.com/mattn/go-runewidth"

	"tabtidy/internal/table"
)

// cellWidth is the display width of a cell text. Wide runes count as two
// terminal columns.
func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Columns is the resolved width-per-column function of one block and one
// alignment pass. Computed fresh per block; never shared between blocks.
type Columns struct {
	widths []int // emitted width per column index
	cfg    *Config
}

// capAt returns the configured cap for a column (0 = unbounded).
// The last widths value repeats for all higher indexes.
func (c *Config) capAt(col int) int {
	if c.FixedWidth > 0 {
		return c.FixedWidth
	}
	if len(c.Widths) == 0 {
		return 0
	}
	if col >= len(c.Widths) {
		return c.Widths[len(c.Widths)-1]
	}
	return c.Widths[col]
}

// alignedCells returns the cells participating in column layout for width
// purposes: the continuation marker reserves column 0 but contributes no
// width, and comments are excluded unless they are aligned.
func alignedCells(s *table.Statement, cfg *Config) []table.Cell {
	if cfg.AlignComments {
		return s.Cells
	}
	body, _ := s.CommentSplit()
	return body
}

// ComputeColumns derives the width of every column across the given
// statements. The result depends only on these statements — never on
// sibling or ancestor blocks.
func ComputeColumns(stmts []*table.Statement, cfg *Config) *Columns {
	maxCols := 0
	for _, s := range stmts {
		if n := len(alignedCells(s, cfg)); n > maxCols {
			maxCols = n
		}
	}

	widths := make([]int, maxCols)
	for col := range widths {
		longest := 0
		for _, s := range stmts {
			cells := alignedCells(s, cfg)
			if col >= len(cells) {
				continue
			}
			cell := cells[col]
			if col == 0 && cell.IsMarker() {
				// reserves the column, contributes no width
				continue
			}
			if cell.Text == "" {
				continue
			}
			if w := cellWidth(cell.Text); w > longest {
				longest = w
			}
		}
		widths[col] = resolveWidth(cfg, col, longest)
	}
	return &Columns{widths: widths, cfg: cfg}
}

// resolveWidth applies the sizing strategy for one column given the longest
// cell actually present.
func resolveWidth(cfg *Config, col, longest int) int {
	cap := cfg.capAt(col)
	switch cfg.Mode {
	case ModeFixed:
		if cap > 0 {
			return cap
		}
		// unbounded column: emit at the longest text plus the separator
		return fitWidth(longest, cfg)
	default: // ModeAuto
		w := fitWidth(longest, cfg)
		if cap > 0 && w > cap {
			w = cap
		}
		if cfg.MinWidth > 0 && w < cfg.MinWidth {
			w = cfg.MinWidth
		}
		return w
	}
}

// fitWidth is the slot width that fits a text of the given display width
// followed by the flat separator.
func fitWidth(longest int, cfg *Config) int {
	if longest == 0 {
		return cfg.SpaceCount
	}
	return longest + cfg.SpaceCount
}

// Count returns the number of computed columns.
func (c *Columns) Count() int {
	return len(c.widths)
}

// Width returns the emitted width of a column. Columns beyond the computed
// range repeat the last width so overflow boundaries stay defined.
func (c *Columns) Width(col int) int {
	if len(c.widths) == 0 {
		return c.cfg.SpaceCount
	}
	if col >= len(c.widths) {
		return c.lastStep()
	}
	return c.widths[col]
}

// Start returns the display offset at which a column begins.
func (c *Columns) Start(col int) int {
	off := 0
	for i := 0; i < col; i++ {
		off += c.Width(i)
	}
	return off
}

// NextBoundary returns the smallest column index whose start offset is at
// least the given display offset.
func (c *Columns) NextBoundary(off int) (col, start int) {
	col, start = 0, 0
	for start < off {
		start += c.Width(col)
		col++
	}
	return col, start
}

func (c *Columns) lastStep() int {
	for i := len(c.widths) - 1; i >= 0; i-- {
		if c.widths[i] > 0 {
			return c.widths[i]
		}
	}
	return c.cfg.SpaceCount
}
