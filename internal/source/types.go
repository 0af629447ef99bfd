package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// LineEnding records the dominant line-ending style of a file before
// normalization, so the writer can restore it on output.
type LineEnding uint8

const (
	EndingLF LineEnding = iota
	EndingCRLF
)

func (e LineEnding) Bytes() []byte {
	if e == EndingCRLF {
		return []byte("\r\n")
	}
	return []byte("\n")
}

// File captures metadata and content for a single source file.
// Content is always LF-normalized; Ending remembers the original style.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
	Ending  LineEnding
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
