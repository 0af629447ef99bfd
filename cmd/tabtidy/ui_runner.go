package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tabtidy/internal/driver"
	"tabtidy/internal/source"
	"tabtidy/internal/ui"
)

type formatOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runFormatWithUI drives FormatPaths behind a progress screen. The event
// channel is closed by the worker goroutine; the UI quits on close.
func runFormatWithUI(ctx context.Context, title string, paths []string, opts *driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.Discover(paths)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Events = events
		fs, results, err := driver.FormatPaths(ctx, paths, &optsCopy)
		outcomeCh <- formatOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
