// Package config loads tabtidy.toml and turns it into ready-to-use
// formatter and rule options.
//
// Назначение: один валидированный конфиг на запуск. Не делает: чтения
// исходников, форматирования.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tabtidy/internal/align"
	"tabtidy/internal/format"
	"tabtidy/internal/rules"
)

// FileName is the manifest searched for by Find.
const FileName = "tabtidy.toml"

// Section is one [sections.<name>] table. Pointer fields distinguish
// "not set" from an explicit false/zero so section tables only override
// what they mention.
type Section struct {
	Align                   *bool  `toml:"align"`
	Widths                  []int  `toml:"widths"`
	AlignmentType           string `toml:"alignment_type"`
	HandleTooLong           string `toml:"handle_too_long"`
	CompactOverflowLimit    *int   `toml:"compact_overflow_limit"`
	AlignComments           *bool  `toml:"align_comments"`
	AlignSettingsSeparately *bool  `toml:"align_settings_separately"`
	UpToColumn              *int   `toml:"up_to_column"`
	FixedWidth              *int   `toml:"fixed_width"`
	MinWidth                *int   `toml:"min_width"`
	SkipComments            *bool  `toml:"skip_comments"`
	SplitOnEveryArg         *bool  `toml:"split_on_every_arg"`
	SplitOnEveryValue       *bool  `toml:"split_on_every_value"`
	SplitOnEverySettingArg  *bool  `toml:"split_on_every_setting_arg"`
	AlignNewLine            *bool  `toml:"align_new_line"`
}

// Rules is the [rules] table.
type Rules struct {
	Disabled []string `toml:"disabled"`
	MaxSteps int      `toml:"max_steps"`
}

// Config mirrors the manifest layout.
type Config struct {
	LineLength         int   `toml:"line_length"`
	SpaceCount         int   `toml:"space_count"`
	Indent             int   `toml:"indent"`
	ContinuationIndent int   `toml:"continuation_indent"`
	NormalizeHeaders   *bool `toml:"normalize_headers"`

	Sections map[string]Section `toml:"sections"`
	Rules    Rules              `toml:"rules"`
}

// Find walks up from startDir looking for tabtidy.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("config: resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses one manifest. Unknown keys are rejected: a typo silently
// falling back to a default is worse than an error.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: %s: unknown option(s): %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.checkSectionNames(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

var sectionNames = []string{"settings", "variables", "test_cases", "keywords"}

func (c *Config) checkSectionNames() error {
	for name := range c.Sections {
		known := false
		for _, n := range sectionNames {
			if name == n {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown section %q (expected one of %s)", name, strings.Join(sectionNames, ", "))
		}
	}
	return nil
}

// FormatOptions builds the formatter options: stock defaults, then the
// global scalars, then per-section overrides. The result is validated.
func (c *Config) FormatOptions() (format.Options, error) {
	opts := format.DefaultOptions()
	if c.NormalizeHeaders != nil {
		opts.NormalizeHeaders = *c.NormalizeHeaders
	}

	styles := map[string]*format.SectionStyle{
		"settings":   &opts.Settings,
		"variables":  &opts.Variables,
		"test_cases": &opts.TestCases,
		"keywords":   &opts.Keywords,
	}
	for _, style := range styles {
		c.applyGlobals(&style.Align)
	}
	for name, sec := range c.Sections {
		if err := sec.apply(styles[name]); err != nil {
			return opts, fmt.Errorf("config: sections.%s: %w", name, err)
		}
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (c *Config) applyGlobals(a *align.Config) {
	if c.LineLength > 0 {
		a.LineLength = c.LineLength
	}
	if c.SpaceCount > 0 {
		a.SpaceCount = c.SpaceCount
	}
	if c.Indent > 0 {
		a.Indent = c.Indent
	}
	if c.ContinuationIndent > 0 {
		a.ContinuationIndent = c.ContinuationIndent
	}
}

func (s *Section) apply(style *format.SectionStyle) error {
	if s.Align != nil {
		style.Aligned = *s.Align
	}
	a := &style.Align
	if len(s.Widths) > 0 {
		a.Widths = s.Widths
	}
	if s.AlignmentType != "" {
		mode, err := align.ParseMode(s.AlignmentType)
		if err != nil {
			return err
		}
		a.Mode = mode
	}
	if s.HandleTooLong != "" {
		policy, err := align.ParsePolicy(s.HandleTooLong)
		if err != nil {
			return err
		}
		a.Policy = policy
	}
	if s.CompactOverflowLimit != nil {
		a.CompactLimit = *s.CompactOverflowLimit
	}
	if s.AlignComments != nil {
		a.AlignComments = *s.AlignComments
	}
	if s.AlignSettingsSeparately != nil {
		a.AlignSettingsSeparately = *s.AlignSettingsSeparately
	}
	if s.UpToColumn != nil {
		a.UpToColumn = *s.UpToColumn
	}
	if s.FixedWidth != nil {
		a.FixedWidth = *s.FixedWidth
	}
	if s.MinWidth != nil {
		a.MinWidth = *s.MinWidth
	}
	if s.SkipComments != nil {
		a.SkipComments = *s.SkipComments
	}
	if s.SplitOnEveryArg != nil {
		a.SplitOnEveryArg = *s.SplitOnEveryArg
	}
	// variable tables name the per-value flag; it drives the same splitter
	if s.SplitOnEveryValue != nil {
		a.SplitOnEveryValue = *s.SplitOnEveryValue
		a.SplitOnEveryArg = *s.SplitOnEveryValue
	}
	if s.SplitOnEverySettingArg != nil {
		a.SplitOnEverySettingArg = *s.SplitOnEverySettingArg
	}
	if s.AlignNewLine != nil {
		a.AlignNewLine = *s.AlignNewLine
	}
	return nil
}

// RuleOptions builds the lint thresholds from the manifest.
func (c *Config) RuleOptions() rules.Options {
	opts := rules.DefaultOptions()
	if c.LineLength > 0 {
		opts.LineLength = c.LineLength
	}
	opts.MaxSteps = c.Rules.MaxSteps
	opts.Disabled = c.Rules.Disabled
	return opts
}

// Starter is the manifest written by "tabtidy init": stock values, ready
// to edit.
const Starter = `# tabtidy configuration

line_length = 120
space_count = 4
indent = 4
continuation_indent = 4

[sections.settings]
align = true
widths = [24]
alignment_type = "fixed"
handle_too_long = "overflow"

[sections.test_cases]
align = false

[rules]
disabled = []
max_steps = 0
`
