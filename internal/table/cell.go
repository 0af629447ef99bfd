// Package table holds the parsed model of a tabular test-automation file:
// cells, statements, blocks, sections.
//
// Назначение: иммутабельное представление разобранных строк для форматтера
// и правил статического анализа. Не делает: разбора текста, вывода, IO.
package table

// Role classifies a single cell within a statement. The set is closed:
// every consumer switches exhaustively over it.
type Role uint8

const (
	// RoleName is a keyword call name, a case definition name, or a block
	// keyword (FOR, IF, END, ...).
	RoleName Role = iota
	// RoleAssign is a pre-keyword assignment target like "${result} =".
	RoleAssign
	// RoleArgument is a positional argument or block-header operand.
	RoleArgument
	// RoleSettingName names a setting: "Library", "[Arguments]", "${VAR}".
	RoleSettingName
	// RoleSettingValue is a value cell of a setting statement.
	RoleSettingValue
	// RoleWithName marks the AS / WITH NAME keyword of a library import.
	RoleWithName
	// RoleComment is a trailing "# ..." cell.
	RoleComment
	// RoleContinuation is the "..." marker opening a continuation row.
	RoleContinuation
)

func (r Role) String() string {
	switch r {
	case RoleName:
		return "name"
	case RoleAssign:
		return "assign"
	case RoleArgument:
		return "argument"
	case RoleSettingName:
		return "setting-name"
	case RoleSettingValue:
		return "setting-value"
	case RoleWithName:
		return "with-name"
	case RoleComment:
		return "comment"
	case RoleContinuation:
		return "continuation"
	}
	return "unknown"
}

// Cell is one token of a statement. Immutable once produced by the parser.
// Col is the original 1-based source column, kept for error reporting only;
// it never participates in layout.
type Cell struct {
	Text string
	Role Role
	Col  uint32
}

// IsMarker reports whether the cell is the continuation marker.
func (c Cell) IsMarker() bool {
	return c.Role == RoleContinuation
}

// ContinuationMarker is the literal text of a continuation cell.
const ContinuationMarker = "..."
