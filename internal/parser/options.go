package parser

import (
	"tabtidy/internal/diag"
	"tabtidy/internal/source"
)

type Options struct {
	Reporter diag.Reporter
}

type parser struct {
	sf   *source.File
	opts Options
}

func (p *parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	}
}
