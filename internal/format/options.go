package format

import (
	"tabtidy/internal/align"
	"tabtidy/internal/table"
)

// SectionStyle is the layout policy of one section kind.
type SectionStyle struct {
	// Aligned enables column alignment; off means flat separators only.
	Aligned bool
	Align   align.Config
}

// Options configures one formatting run. Построен один раз; общий для всех
// файлов запуска (read-only).
type Options struct {
	Settings  SectionStyle
	Variables SectionStyle
	TestCases SectionStyle
	Keywords  SectionStyle

	// NormalizeHeaders rewrites section headers to canonical casing
	// ("*** test cases ***" -> "*** Test Cases ***").
	NormalizeHeaders bool
}

// DefaultOptions aligns settings and variables sections and keeps test and
// keyword bodies flat, matching the stock behavior of the tool.
func DefaultOptions() Options {
	return Options{
		Settings:         SectionStyle{Aligned: true, Align: align.Default()},
		Variables:        SectionStyle{Aligned: true, Align: align.Default()},
		TestCases:        SectionStyle{Align: align.Default()},
		Keywords:         SectionStyle{Align: align.Default()},
		NormalizeHeaders: true,
	}
}

func (o *Options) styleFor(kind table.SectionKind) *SectionStyle {
	switch kind {
	case table.SectionSettings:
		return &o.Settings
	case table.SectionVariables:
		return &o.Variables
	case table.SectionTestCases:
		return &o.TestCases
	case table.SectionKeywords:
		return &o.Keywords
	}
	return nil
}

// Validate checks every section's alignment config.
func (o *Options) Validate() error {
	for _, style := range []*SectionStyle{&o.Settings, &o.Variables, &o.TestCases, &o.Keywords} {
		if err := style.Align.Validate(); err != nil {
			return err
		}
	}
	return nil
}
