// Package fix applies the text edits attached to diagnostics. Edits run
// against in-memory copies of the files; the caller decides what to do with
// the rewritten content.
//
// Назначение: безопасное применение правок из диагностик. Не делает: записи
// на диск, повторного запуска правил.
package fix

import (
	"errors"
	"fmt"
	"sort"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
)

// ErrNoFixes is returned when no diagnostic carried an applicable fix.
var ErrNoFixes = errors.New("fix: no applicable fixes found")

// Applied records one successfully applied fix.
type Applied struct {
	Title   string
	Code    diag.Code
	Message string
	Path    string
	Edits   int
}

// Skipped records a fix that could not be applied, with the reason.
type Skipped struct {
	Title  string
	Reason string
}

// Result aggregates the outcome of one Apply run. Content holds the new
// bytes of every file at least one fix touched.
type Result struct {
	Applied []Applied
	Skipped []Skipped
	Content map[source.FileID][]byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply runs every fix attached to the diagnostics against in-memory copies
// of the files. Fixes are ordered by position; a fix whose edits overlap an
// already applied edit, or whose OldText no longer matches, is skipped as a
// whole (a fix applies atomically or not at all).
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: file set is nil")
	}
	result := &Result{Content: make(map[source.FileID][]byte)}

	cands := gather(diagnostics)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(cands)

	buffers := make(map[source.FileID][]byte)
	applied := make(map[source.FileID][]diag.TextEdit)

	for _, cand := range cands {
		fileID, reason := applyFix(fs, cand.fix, buffers, applied)
		if reason != "" {
			result.Skipped = append(result.Skipped, Skipped{Title: cand.fix.Title, Reason: reason})
			continue
		}
		result.Applied = append(result.Applied, Applied{
			Title:   cand.fix.Title,
			Code:    cand.diag.Code,
			Message: cand.diag.Message,
			Path:    fs.Get(fileID).Path,
			Edits:   len(cand.fix.Edits),
		})
	}

	for fileID, buf := range buffers {
		result.Content[fileID] = buf
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

func gather(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders fixes by file, then span, then insertion order, so
// repeated runs apply fixes deterministically.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		di, dj := cands[i].diag.Primary, cands[j].diag.Primary
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Start != dj.Start {
			return di.Start < dj.Start
		}
		if di.End != dj.End {
			return di.End < dj.End
		}
		return cands[i].order < cands[j].order
	})
}

// applyFix stages one fix. It returns the touched file and an empty reason
// on success; a non-empty reason means the buffers were left untouched.
func applyFix(fs *source.FileSet, f diag.Fix, buffers map[source.FileID][]byte, applied map[source.FileID][]diag.TextEdit) (source.FileID, string) {
	if len(f.Edits) == 0 {
		return 0, "fix has no edits"
	}
	fileID := f.Edits[0].Span.File
	for _, e := range f.Edits {
		if e.Span.File != fileID {
			return 0, "fix spans multiple files"
		}
	}
	file := fs.Get(fileID)
	if file == nil {
		return 0, "unknown file"
	}

	if conflicts(applied[fileID], f.Edits) {
		return 0, "overlaps a previously applied fix"
	}

	working := buffers[fileID]
	if working == nil {
		working = append([]byte(nil), file.Content...)
	} else {
		working = append([]byte(nil), working...)
	}

	// apply back to front so earlier offsets stay valid; offsets of edits
	// from other fixes are corrected by the cumulative delta
	edits := append([]diag.TextEdit(nil), f.Edits...)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start == edits[j].Span.Start {
			return edits[i].Span.End > edits[j].Span.End
		}
		return edits[i].Span.Start > edits[j].Span.Start
	})

	done := append([]diag.TextEdit(nil), applied[fileID]...)
	for _, edit := range edits {
		start := int(edit.Span.Start) + cumulativeDelta(done, int(edit.Span.Start))
		end := int(edit.Span.End) + cumulativeDelta(done, int(edit.Span.End))
		if start < 0 || end < start || end > len(working) {
			return 0, "edit span out of range"
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return 0, "existing text does not match expected content"
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], []byte(edit.NewText)...), suffix...)
		done = insertEditSorted(done, edit)
	}

	buffers[fileID] = working
	applied[fileID] = done
	return fileID, ""
}

func conflicts(existing, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open [Start, End) intervals. Two
// zero-length edits never conflict; a zero-length edit conflicts with a span
// that contains its position.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// cumulativeDelta is the byte-offset shift at pos caused by edits already
// applied before it.
func cumulativeDelta(edits []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		eStart := int(e.Span.Start)
		if eStart > pos {
			break
		}
		eEnd := int(e.Span.End)
		if eEnd <= pos {
			delta += len(e.NewText) - (eEnd - eStart)
		}
	}
	return delta
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	idx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[idx+1:], edits[idx:])
	edits[idx] = edit
	return edits
}
