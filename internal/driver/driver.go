// Package driver orchestrates runs over many files: discovery, parallel
// formatting and linting, write-back, and the on-disk result cache. One
// file is the isolation boundary: a failure there lands in that file's
// diagnostic bag and never stops the batch.
//
// Назначение: вся работа с диском и параллелизмом. Не делает: раскладки,
// правил — это делегируется format и rules.
package driver

import (
	"bytes"
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tabtidy/internal/diag"
	"tabtidy/internal/format"
	"tabtidy/internal/rules"
	"tabtidy/internal/source"
)

// Mode selects what FormatPaths does with formatted output.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports which files would change.
	ModeCheck
	// ModeStdout keeps output in the results for the caller to print.
	ModeStdout
)

// Options configures one driver run.
type Options struct {
	Format format.Options
	Rules  rules.Options
	Mode   Mode
	// Jobs caps worker goroutines; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds each file's bag.
	MaxDiagnostics int
	// Cache, when non-nil, memoizes formatting results across runs.
	Cache *DiskCache
	// Events, when non-nil, receives per-file progress updates. The caller
	// owns the channel and closes nothing here; buffer it generously.
	Events chan<- Event
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	Output    []byte
	Changed   bool
	FromCache bool
}

func (o *Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, n)
}

func (o *Options) bagCap() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 256
}

// FormatPaths formats every file under the given paths in parallel. The
// returned results follow the sorted file order regardless of scheduling.
func FormatPaths(ctx context.Context, paths []string, opts *Options) (*source.FileSet, []FileResult, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// sequential preload: FileSet mutation is not concurrency-safe; raw
	// bytes are kept for exact change detection and cache keys
	raws := make([][]byte, len(files))
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		raws[i] = raw
		ids[i] = fileSet.AddVirtual(path, raw)
	}

	optsHash := optionsHash(&opts.Format)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален — мьютекс не нужен
			opts.emit(path, StatusWorking)
			results[i] = formatOne(fileSet, path, ids[i], raws[i], loadErrs[i], optsHash, opts)
			opts.emit(path, eventStatus(&results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func formatOne(fileSet *source.FileSet, path string, id source.FileID, raw []byte, loadErr error, optsHash [32]byte, opts *Options) FileResult {
	bag := diag.NewBag(opts.bagCap())
	res := FileResult{Path: path, FileID: id, Bag: bag}
	if loadErr != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + loadErr.Error(),
		})
		return res
	}

	key := cacheKey(raw, optsHash)
	if payload, ok := opts.Cache.Get(key); ok {
		for _, d := range payload.Diags {
			bag.Add(d)
		}
		res.Output = payload.Output
		res.Changed = payload.Changed
		res.FromCache = true
	} else {
		sf := fileSet.Get(id)
		out := format.FormatFile(sf, &opts.Format, &diag.BagReporter{Bag: bag})
		if err := format.CheckRoundTrip(sf, out); err != nil {
			// never write a file whose content we could not preserve
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.FmtRoundTrip,
				Message:  err.Error(),
				Primary:  source.Span{File: id},
			})
			return res
		}
		res.Output = out
		res.Changed = !bytes.Equal(out, raw)

		// cache trouble is not a formatting failure
		_ = opts.Cache.Put(key, &cachePayload{
			Schema:  cacheSchemaVersion,
			Output:  out,
			Changed: res.Changed,
			Diags:   bag.Items(),
		})
	}

	if opts.Mode == ModeWrite && res.Changed {
		if err := writeInPlace(path, res.Output); err != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOWriteFileError,
				Message:  "failed to write file: " + err.Error(),
				Primary:  source.Span{File: id},
			})
		}
	}
	return res
}

func eventStatus(res *FileResult) Status {
	switch {
	case res.Bag.HasErrors():
		return StatusError
	case res.FromCache:
		return StatusCached
	default:
		return StatusDone
	}
}

// writeInPlace preserves the file's permission bits.
func writeInPlace(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode)
}
