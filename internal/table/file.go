package table

import (
	"tabtidy/internal/source"
)

// SectionKind tags a top-level section of a tabular file.
type SectionKind uint8

const (
	SectionSettings SectionKind = iota
	SectionVariables
	SectionTestCases
	SectionKeywords
	SectionComments
	SectionUnknown
)

func (k SectionKind) String() string {
	switch k {
	case SectionSettings:
		return "settings"
	case SectionVariables:
		return "variables"
	case SectionTestCases:
		return "test cases"
	case SectionKeywords:
		return "keywords"
	case SectionComments:
		return "comments"
	}
	return "unknown"
}

// Case is one named test case or user keyword: a zero-indent name row and
// an indented body block (level 1).
type Case struct {
	Name Statement
	Body Block
}

// Section is one "*** ... ***" region.
//
// Settings and variables sections keep their rows in Body (one block, level 0,
// the whole section is a single alignment scope). Test-case and keyword
// sections keep their content in Cases; Body then holds only loose rows that
// precede the first case (typically comments).
type Section struct {
	Kind   SectionKind
	Header Statement
	Body   Block
	Cases  []Case
}

// File is the parsed model of one source file.
type File struct {
	ID       source.FileID
	Path     string
	Sections []Section
}

// WalkBlocks calls fn for every block of the file, depth-first.
func (f *File) WalkBlocks(fn func(*Block)) {
	for i := range f.Sections {
		sec := &f.Sections[i]
		sec.Body.Walk(fn)
		for j := range sec.Cases {
			sec.Cases[j].Body.Walk(fn)
		}
	}
}
