package driver

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"tabtidy/internal/diag"
	"tabtidy/internal/fix"
	"tabtidy/internal/parser"
	"tabtidy/internal/rules"
	"tabtidy/internal/source"
)

// LintResult is the lint outcome for one file.
type LintResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
}

// LintPaths parses every file and runs the rule registry, in parallel.
// The cache is not consulted: rules are cheap and their thresholds change
// more often than file content.
func LintPaths(ctx context.Context, paths []string, opts *Options) (*source.FileSet, []LintResult, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		ids[i] = fileSet.AddVirtual(path, raw)
	}

	registry := rules.NewRegistry()
	results := make([]LintResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			opts.emit(path, StatusWorking)
			bag := diag.NewBag(opts.bagCap())
			results[i] = LintResult{Path: path, FileID: ids[i], Bag: bag}
			if loadErrs[i] != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErrs[i].Error(),
				})
				opts.emit(path, StatusError)
				return nil
			}
			sf := fileSet.Get(ids[i])
			rep := &diag.BagReporter{Bag: bag}
			registry.Run(&rules.Context{
				File:     sf,
				Table:    parser.ParseFile(sf, parser.Options{Reporter: rep}),
				Reporter: rep,
				Options:  opts.Rules,
			})
			bag.Sort()
			if bag.HasErrors() {
				opts.emit(path, StatusError)
			} else {
				opts.emit(path, StatusDone)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ApplyFixes runs the fix engine over the lint results and writes every
// changed file back to disk. Runs after LintPaths, never concurrently with
// it (the engine works on the shared FileSet).
func ApplyFixes(fileSet *source.FileSet, results []LintResult) (*fix.Result, error) {
	var diags []diag.Diagnostic
	for _, r := range results {
		diags = append(diags, r.Bag.Items()...)
	}
	res, err := fix.Apply(fileSet, diags)
	if errors.Is(err, fix.ErrNoFixes) {
		return res, nil
	}
	if err != nil {
		return res, err
	}
	for fileID, content := range res.Content {
		path := fileSet.Get(fileID).Path
		if err := writeInPlace(path, content); err != nil {
			return res, err
		}
	}
	return res, nil
}
