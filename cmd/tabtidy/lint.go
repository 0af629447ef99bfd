package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabtidy/internal/diag"
	"tabtidy/internal/diagfmt"
	"tabtidy/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <path> [path...]",
	Short: "Check tabular test files for style issues",
	Long:  "Run the rule set over the given files, optionally applying the attached fixes.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().Bool("fix", false, "apply available fixes and rewrite files")
	lintCmd.Flags().String("format", "text", "output format (text|json)")
	lintCmd.Flags().Bool("context", false, "show the offending source line under each finding")
}

func runLint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	applyFix, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	showContext, err := cmd.Flags().GetBool("context")
	if err != nil {
		return err
	}
	switch outputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("lint: unsupported output format %q", outputFormat)
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
	opts := &driver.Options{
		Rules:          cfg.RuleOptions(),
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}

	fileSet, results, err := driver.LintPaths(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	if applyFix {
		res, err := driver.ApplyFixes(fileSet, results)
		if err != nil {
			return fmt.Errorf("lint: %w", err)
		}
		if !quiet {
			for _, a := range res.Applied {
				fmt.Fprintf(os.Stdout, "fixed %s: %s\n", a.Path, a.Title)
			}
		}
		// повторный прогон показал бы остаток; сейчас просто отчитываемся
	}

	var issues int
	for _, r := range results {
		issues += r.Bag.Len()
	}

	switch outputFormat {
	case "text":
		topts := textOpts()
		topts.Context = showContext
		for _, r := range results {
			diagfmt.Text(os.Stderr, r.Bag, fileSet, topts)
		}
	case "json":
		merged := diag.NewBag(min(issues+1, 1<<16-1))
		for _, r := range results {
			merged.Merge(r.Bag)
		}
		jopts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, jopts); err != nil {
			return err
		}
	}

	if issues > 0 && !applyFix {
		return fmt.Errorf("lint: %d issue(s) found", issues)
	}
	for _, r := range results {
		if r.Bag.HasErrors() {
			return fmt.Errorf("lint: failed to check some files")
		}
	}
	return nil
}
