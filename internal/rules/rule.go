// Package rules runs per-file static checks over the parsed table model and
// the raw source text. Rules only report through diag; they never modify the
// model or the file.
//
// Назначение: lint-проверки поверх модели. Не делает: форматирования, IO.
package rules

import (
	"sort"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

// Context carries everything a rule may inspect for one file.
type Context struct {
	File     *source.File
	Table    *table.File
	Reporter diag.Reporter
	Options  Options
}

// Rule is one named check. Check must be safe to run on any parse result,
// including files with structural diagnostics.
type Rule interface {
	Code() diag.Code
	Check(ctx *Context)
}

// Options are the tunable thresholds shared by the built-in rules.
type Options struct {
	// LineLength is the budget for the line-too-long rule.
	LineLength int
	// MaxSteps caps the statement count of one case body (0 disables).
	MaxSteps int
	// Disabled lists rule IDs (diag code IDs) that must not run.
	Disabled []string
}

// DefaultOptions matches the formatter's stock line budget.
func DefaultOptions() Options {
	return Options{LineLength: 120, MaxSteps: 0}
}

func (o *Options) disabled(code diag.Code) bool {
	for _, id := range o.Disabled {
		if id == code.ID() {
			return true
		}
	}
	return false
}

// Registry is an ordered rule set. Rules run in registration order so
// diagnostics come out deterministic before any sort.
type Registry struct {
	rules []Rule
}

// NewRegistry returns a registry with every built-in rule.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(
		LineTooLong{},
		TrailingWhitespace{},
		DuplicateName{},
		EmptySection{},
		TooManySteps{},
		InconsistentCase{},
	)
	return r
}

// Register appends rules to the run order.
func (r *Registry) Register(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// Codes returns the registered rule codes, sorted by ID.
func (r *Registry) Codes() []diag.Code {
	out := make([]diag.Code, len(r.rules))
	for i, rule := range r.rules {
		out[i] = rule.Code()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Run executes every enabled rule against the file.
func (r *Registry) Run(ctx *Context) {
	for _, rule := range r.rules {
		if ctx.Options.disabled(rule.Code()) {
			continue
		}
		rule.Check(ctx)
	}
}

// eachLine calls fn for every physical line with its 1-based number and the
// byte span of the line content (line terminator excluded).
func eachLine(sf *source.File, fn func(num uint32, text string, sp source.Span)) {
	start := 0
	num := uint32(1)
	content := sf.Content
	for i := 0; i <= len(content); i++ {
		if i == len(content) || content[i] == '\n' {
			if i > start || i < len(content) {
				sp := source.Span{File: sf.ID, Start: uint32(start), End: uint32(i)}
				fn(num, string(content[start:i]), sp)
			}
			start = i + 1
			num++
		}
	}
}
