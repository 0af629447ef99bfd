package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tabtidy/internal/diag"
	"tabtidy/internal/diagfmt"
	"tabtidy/internal/driver"
	"tabtidy/internal/source"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format tabular test files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().String("progress", "auto", "progress screen (auto|on|off)")
	fmtCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	progressValue, err := cmd.Flags().GetString("progress")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	switch outputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	progressMode, err := readUIMode(progressValue)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	formatOpts, err := cfg.FormatOptions()
	if err != nil {
		return err
	}

	opts := &driver.Options{
		Format:         formatOpts,
		Mode:           driver.ModeWrite,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	switch {
	case check:
		opts.Mode = driver.ModeCheck
	case writeToStdout:
		opts.Mode = driver.ModeStdout
	}
	if !noCache {
		if cache, err := driver.OpenDiskCache("tabtidy"); err == nil {
			opts.Cache = cache
		}
		// кеш недоступен — работаем без него
	}

	useTUI := shouldUseTUI(progressMode) && !writeToStdout && outputFormat == "text"

	var fileSet *source.FileSet
	var results []driver.FileResult
	if useTUI {
		fileSet, results, err = runFormatWithUI(cmd.Context(), "tabtidy fmt", args, opts)
	} else {
		fileSet, results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(fileSet, results, &hasErrors)
		} else {
			renderFmtText(fileSet, results, check, quiet, &hasErrors, &hasChanges)
		}
	case "json":
		if err := renderFmtJSON(results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Bag.HasErrors()
			hasChanges = hasChanges || res.Changed
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func textOpts() diagfmt.TextOpts {
	return diagfmt.TextOpts{
		Color:     !color.NoColor,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
}

func renderFmtStdout(fileSet *source.FileSet, results []driver.FileResult, hasErrors *bool) {
	for _, res := range results {
		if res.Bag.HasErrors() {
			*hasErrors = true
			diagfmt.Text(os.Stderr, res.Bag, fileSet, textOpts())
			continue
		}
		_, _ = os.Stdout.Write(res.Output)
	}
}

func renderFmtText(fileSet *source.FileSet, results []driver.FileResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Bag.Len() > 0 {
			diagfmt.Text(os.Stderr, res.Bag, fileSet, textOpts())
		}
		if res.Bag.HasErrors() {
			*hasErrors = true
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(os.Stdout, res.Path)
		} else {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(results []driver.FileResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Cached   bool   `json:"cached,omitempty"`
		Errors   int    `json:"errors,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		errors := 0
		for _, d := range res.Bag.Items() {
			if d.Severity >= diag.SevError {
				errors++
			}
		}
		payload = append(payload, jsonResult{
			Path:     res.Path,
			Changed:  res.Changed,
			Cached:   res.FromCache,
			Errors:   errors,
			CheckRun: check,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
