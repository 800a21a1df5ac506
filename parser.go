// Package scatexparser parses natural-language date and time expressions
// into typed expression trees that can be evaluated against an anchor
// instant. The scatex subpackage defines the tree and its evaluator; this
// package adds multilingual recognition on top.
package scatexparser

import (
	"time"

	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
	"github.com/BenjaminIrwin/scatexparser/scatex"
)

// Result pairs a parsed expression with the locale that recognized it and
// its period label.
type Result struct {
	Expression scatex.Expression
	Period     string
	Locale     string
}

// Evaluate resolves the expression against anchor. The second return is
// false when the tree cannot be pinned to a concrete interval.
func (r *Result) Evaluate(anchor time.Time) (scatex.Interval, bool) {
	return scatex.Evaluate(r.Expression, anchor)
}

// Parser is a reusable multilingual parser. It is safe for concurrent use.
type Parser struct {
	rec *recognize.Recognizer
}

// NewParser builds a parser that tries the given locale codes in order.
// With no arguments it parses English only.
func NewParser(languages ...string) (*Parser, error) {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	rec, err := recognize.New(languages)
	if err != nil {
		return nil, err
	}
	return &Parser{rec: rec}, nil
}

// ParseData parses text into a Result. The second return is false when
// the input contains no recognizable expression.
func (p *Parser) ParseData(text string) (*Result, bool) {
	frag, locale, ok := p.rec.Recognize(text)
	if !ok {
		return nil, false
	}
	expr, err := scatex.Build(frag)
	if err != nil {
		return nil, false
	}
	return &Result{
		Expression: expr,
		Period:     scatex.Granularity(expr),
		Locale:     locale,
	}, true
}

// Parse is a convenience shorthand: it parses text with a throwaway
// parser and returns the bare expression, or nil when nothing matched.
func Parse(text string, languages ...string) scatex.Expression {
	p, err := NewParser(languages...)
	if err != nil {
		return nil
	}
	res, ok := p.ParseData(text)
	if !ok {
		return nil
	}
	return res.Expression
}
