package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabtidy/internal/format"
)

// canonical default formatting of a one-library settings file
const formattedSettings = "*** Settings ***\n" +
	"Library                 Collections\n"

const messySettings = "*** Settings ***\n" +
	"Library  Collections\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.robot", "")
	writeFile(t, dir, "a.resource", "")
	writeFile(t, dir, "notes.txt", "")
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, ".git"), "hook.robot", "")

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want 2 entries", files)
	}
	if filepath.Base(files[0]) != "a.resource" || filepath.Base(files[1]) != "b.robot" {
		t.Fatalf("unexpected order: %v", files)
	}

	// явный файл берётся как есть, даже с чужим расширением
	txt := filepath.Join(dir, "notes.txt")
	files, err = Discover([]string{txt, txt})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != filepath.Clean(txt) {
		t.Fatalf("explicit file: %v", files)
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	if _, err := Discover([]string{filepath.Join(t.TempDir(), "gone.robot")}); err == nil {
		t.Fatal("expected error for a missing path")
	}
}

func TestFormatPathsCheck(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.robot", formattedSettings)
	dirty := writeFile(t, dir, "dirty.robot", messySettings)

	opts := &Options{Mode: ModeCheck}
	opts.Format = format.DefaultOptions()
	_, results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	byPath := map[string]FileResult{}
	for _, r := range results {
		byPath[filepath.Base(r.Path)] = r
	}
	if byPath["clean.robot"].Changed {
		t.Error("clean file reported as changed")
	}
	if !byPath["dirty.robot"].Changed {
		t.Error("dirty file not reported as changed")
	}
	if got := string(byPath["dirty.robot"].Output); got != formattedSettings {
		t.Errorf("output = %q, want %q", got, formattedSettings)
	}

	// check mode never touches the disk
	if readFile(t, clean) != formattedSettings || readFile(t, dirty) != messySettings {
		t.Error("check mode modified files on disk")
	}
}

func TestFormatPathsWrite(t *testing.T) {
	dir := t.TempDir()
	dirty := writeFile(t, dir, "suite.robot", messySettings)

	opts := &Options{Mode: ModeWrite}
	opts.Format = format.DefaultOptions()
	_, results, err := FormatPaths(context.Background(), []string{dirty}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Fatal("expected the file to change")
	}
	if readFile(t, dirty) != formattedSettings {
		t.Fatalf("on disk: %q", readFile(t, dirty))
	}

	// second run: already formatted, nothing to do
	_, results, err = FormatPaths(context.Background(), []string{dirty}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Changed {
		t.Error("second run still reports a change")
	}
}

func TestFormatPathsCacheHit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.robot", messySettings)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	opts := &Options{Mode: ModeCheck, Cache: cache}
	opts.Format = format.DefaultOptions()
	_, results, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].FromCache {
		t.Fatal("first run must be a cache miss")
	}

	_, results, err = FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].FromCache {
		t.Fatal("second run must hit the cache")
	}
	if !results[0].Changed || string(results[0].Output) != formattedSettings {
		t.Errorf("cached result diverges: changed=%v output=%q",
			results[0].Changed, results[0].Output)
	}

	// editing the file invalidates the entry
	writeFile(t, dir, "suite.robot", formattedSettings)
	_, results, err = FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].FromCache {
		t.Error("changed content must miss the cache")
	}
	if results[0].Changed {
		t.Error("formatted content reported as changed")
	}
}

func TestLintPaths(t *testing.T) {
	dir := t.TempDir()
	content := "*** Test Cases ***\n" +
		"My Test\n" +
		"    Log    message  \n"
	path := writeFile(t, dir, "suite.robot", content)

	opts := &Options{}
	_, results, err := LintPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	var found bool
	for _, d := range results[0].Bag.Items() {
		if d.Code.ID() == "trailing-whitespace" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no trailing-whitespace diagnostic: %v", results[0].Bag.Items())
	}
}

func TestLintPathsDisabledRule(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.robot",
		"*** Test Cases ***\nMy Test\n    Log    message  \n")

	opts := &Options{}
	opts.Rules.Disabled = []string{"trailing-whitespace"}
	_, results, err := LintPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range results[0].Bag.Items() {
		if d.Code.ID() == "trailing-whitespace" {
			t.Fatal("disabled rule still fired")
		}
	}
}

func TestApplyFixes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.robot",
		"*** Test Cases ***\nMy Test\n    Log    message  \n")

	fileSet, results, err := LintPaths(context.Background(), []string{path}, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := ApplyFixes(fileSet, results)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) == 0 {
		t.Fatal("no fixes applied")
	}
	got := readFile(t, path)
	if strings.Contains(got, " \n") {
		t.Errorf("trailing whitespace survived: %q", got)
	}
	if !bytes.Contains([]byte(got), []byte("Log    message\n")) {
		t.Errorf("fixed content = %q", got)
	}
}

func TestApplyFixesNothingToFix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "suite.robot", formattedSettings)

	fileSet, results, err := LintPaths(context.Background(), []string{path}, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := ApplyFixes(fileSet, results)
	if err != nil {
		t.Fatalf("clean tree must not fail: %v", err)
	}
	if len(res.Applied) != 0 {
		t.Errorf("applied = %v", res.Applied)
	}
}
