package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические (разбиение строк на ячейки)
	LexInfo             Code = 1000
	LexMixedSeparators  Code = 1001
	LexUnclosedPipeRow  Code = 1002
	LexDanglingEllipsis Code = 1003

	// Структурные (сборка секций и блоков)
	SynInfo                Code = 2000
	SynUnknownSection      Code = 2001
	SynStatementBeforeCase Code = 2002
	SynMissingEnd          Code = 2003
	SynUnexpectedEnd       Code = 2004
	SynOrphanBranch        Code = 2005
	SynEmptyStatement      Code = 2006

	// Правила статического анализа
	RuleInfo               Code = 3000
	RuleLineTooLong        Code = 3001
	RuleTrailingWhitespace Code = 3002
	RuleDuplicateName      Code = 3003
	RuleEmptySection       Code = 3004
	RuleTooManySteps       Code = 3005
	RuleInconsistentCase   Code = 3006

	// Конфигурация
	CfgInfo           Code = 4000
	CfgBadOption      Code = 4001
	CfgPolicyConflict Code = 4002

	// Ввод-вывод
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002

	// Форматирование
	FmtRoundTrip Code = 6001
)

// ID returns the stable textual identifier used in reports and golden files.
func (c Code) ID() string {
	switch c {
	case LexMixedSeparators:
		return "mixed-separators"
	case LexUnclosedPipeRow:
		return "unclosed-pipe-row"
	case LexDanglingEllipsis:
		return "dangling-continuation"
	case SynUnknownSection:
		return "unknown-section"
	case SynStatementBeforeCase:
		return "statement-outside-case"
	case SynMissingEnd:
		return "missing-end"
	case SynUnexpectedEnd:
		return "unexpected-end"
	case SynOrphanBranch:
		return "orphan-branch"
	case SynEmptyStatement:
		return "empty-statement"
	case RuleLineTooLong:
		return "line-too-long"
	case RuleTrailingWhitespace:
		return "trailing-whitespace"
	case RuleDuplicateName:
		return "duplicate-name"
	case RuleEmptySection:
		return "empty-section"
	case RuleTooManySteps:
		return "too-many-steps"
	case RuleInconsistentCase:
		return "inconsistent-case"
	case CfgBadOption:
		return "bad-option"
	case CfgPolicyConflict:
		return "policy-conflict"
	case IOLoadFileError:
		return "load-error"
	case IOWriteFileError:
		return "write-error"
	case FmtRoundTrip:
		return "round-trip-changed"
	default:
		return fmt.Sprintf("code-%d", uint16(c))
	}
}

func (c Code) String() string {
	return fmt.Sprintf("%s(%d)", c.ID(), uint16(c))
}
