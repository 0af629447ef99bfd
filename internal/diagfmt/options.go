// Package diagfmt renders diagnostics for the CLI: colored text for
// humans, JSON for tooling. It never mutates the bag; callers sort it
// first when they want ordered output.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// TextOpts configures human-readable output.
type TextOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Context prints the offending source line under each diagnostic.
	Context bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
}
