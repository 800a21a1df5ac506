// Package recognize turns free text into structured scatex fragments
// using per-locale vocabularies. It performs no ambiguity resolution:
// for each input it either emits the single best fragment for the first
// matching locale in the caller's language order, or nothing.
package recognize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/BenjaminIrwin/scatexparser/scatex"
)

// Locale-independent numeric layouts, checked before vocabulary scanning.
var (
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	dmyDateRe = regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})[./](\d{4})\b`)
	clockRe   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)
)

// Recognizer matches text against an ordered list of locale vocabularies.
// It is immutable after construction and safe for concurrent use; to pick
// up changed override files, build a new Recognizer.
type Recognizer struct {
	tables []*table
}

// New builds a recognizer for the given ordered locale codes using the
// embedded dictionaries only.
func New(languages []string) (*Recognizer, error) {
	return NewWithOverrides(languages, "")
}

// NewWithOverrides builds a recognizer with extra dictionaries merged
// from overridesDir (may be empty). Every requested language must be
// known after overrides are applied.
func NewWithOverrides(languages []string, overridesDir string) (*Recognizer, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("recognize: at least one language is required")
	}
	dicts, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	if overridesDir != "" {
		if err := loadOverrides(dicts, overridesDir); err != nil {
			return nil, err
		}
	}
	r := &Recognizer{}
	for _, lang := range languages {
		d, ok := dicts[lang]
		if !ok {
			return nil, fmt.Errorf("recognize: unsupported locale %q", lang)
		}
		r.tables = append(r.tables, compile(d))
	}
	return r, nil
}

// Languages returns the recognizer's locale codes in match order.
func (r *Recognizer) Languages() []string {
	out := make([]string, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.locale
	}
	return out
}

// Supported lists the embedded locale codes.
func Supported() []string {
	dicts, err := loadEmbedded()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(dicts))
	for code := range dicts {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Recognize scans text for a single date-like expression. It returns the
// fragment, the locale that produced it, and whether anything matched.
func (r *Recognizer) Recognize(text string) (scatex.Fragment, string, bool) {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return scatex.Fragment{}, "", false
	}

	// Numeric layouts need no vocabulary; attribute them to the
	// caller's primary locale.
	if f, ok := layoutFragment(norm); ok {
		return f, r.tables[0].locale, true
	}

	for _, t := range r.tables {
		if f, ok := recognizeWith(t, norm); ok {
			return f, t.locale, true
		}
	}
	return scatex.Fragment{}, "", false
}

// layoutFragment matches ISO (2023-10-07), day-first (07/10/2023,
// 07.10.2023), and clock (15:30, 15:30:45) layouts, combining date and
// time parts when both appear.
func layoutFragment(norm string) (scatex.Fragment, bool) {
	var f scatex.Fragment
	matched := false

	if m := isoDateRe.FindStringSubmatch(norm); m != nil {
		f.Year = atoiPtr(m[1])
		f.Month = atoiPtr(m[2])
		f.Day = atoiPtr(m[3])
		matched = true
	} else if m := dmyDateRe.FindStringSubmatch(norm); m != nil {
		f.Day = atoiPtr(m[1])
		f.Month = atoiPtr(m[2])
		f.Year = atoiPtr(m[3])
		matched = true
	}

	if m := clockRe.FindStringSubmatch(norm); m != nil {
		f.Hour = atoiPtr(m[1])
		f.Minute = atoiPtr(m[2])
		if m[3] != "" {
			f.Second = atoiPtr(m[3])
		}
		matched = true
	}

	return f, matched
}

func recognizeWith(t *table, norm string) (scatex.Fragment, bool) {
	// Relative-shift markers first: they subsume their number and unit.
	for _, p := range t.relative {
		if !containsPhrase(norm, p.phrase) {
			continue
		}
		rest := removePhrase(norm, p.phrase)
		value, unit, ok := extractShift(t, rest)
		if !ok {
			continue
		}
		return scatex.Fragment{Shift: &scatex.ShiftSpec{Value: value, Unit: unit, Direction: p.direction}}, true
	}

	var (
		keyword  scatex.Keyword
		modifier scatex.Modifier
		weekday  *time.Weekday
		month    *time.Month
		unit     *scatex.Unit
		numbers  []int
	)

	for _, tok := range tokenize(norm) {
		if kw, ok := t.keywords[tok]; ok && keyword == scatex.KeywordNone {
			keyword = kw
		}
		if mod, ok := t.modifiers[tok]; ok && modifier == scatex.ModifierNone {
			modifier = mod
		}
		if wd, ok := t.weekdays[tok]; ok && weekday == nil {
			wd := wd
			weekday = &wd
		}
		if m, ok := t.months[tok]; ok && month == nil {
			m := m
			month = &m
		}
		if u, ok := t.units[tok]; ok && unit == nil {
			u := u
			unit = &u
		}
		if n, err := strconv.Atoi(tok); err == nil {
			numbers = append(numbers, n)
		}
	}

	switch {
	case keyword != scatex.KeywordNone:
		return scatex.Fragment{Keyword: keyword}, true

	case weekday != nil:
		return scatex.Fragment{Weekday: weekday, Modifier: modifier}, true

	case month != nil:
		f := scatex.Fragment{MonthName: month, Modifier: modifier}
		for _, n := range numbers {
			switch {
			case n >= 1000 && n <= 9999 && f.Year == nil:
				y := n
				f.Year = &y
			case n >= 1 && n <= 31 && f.Day == nil:
				d := n
				f.Day = &d
			}
		}
		return f, true

	case modifier != scatex.ModifierNone && unit != nil:
		return scatex.Fragment{RepeatUnit: unit, Modifier: modifier}, true

	case len(numbers) == 1 && numbers[0] >= 1000 && numbers[0] <= 9999:
		y := numbers[0]
		return scatex.Fragment{Year: &y}, true
	}

	return scatex.Fragment{}, false
}

// extractShift pulls the magnitude and unit out of a relative expression
// with its marker phrase already removed ("3 days", "3 días").
func extractShift(t *table, rest string) (int, scatex.Unit, bool) {
	value := -1
	var unit scatex.Unit
	haveUnit := false
	for _, tok := range tokenize(rest) {
		if n, err := strconv.Atoi(tok); err == nil && value < 0 && n >= 0 {
			value = n
			continue
		}
		if u, ok := t.units[tok]; ok && !haveUnit {
			unit = u
			haveUnit = true
		}
	}
	if value < 0 || !haveUnit {
		return 0, 0, false
	}
	return value, unit, true
}

func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

func removePhrase(s, phrase string) string {
	return strings.TrimSpace(strings.Replace(" "+s+" ", " "+phrase+" ", " ", 1))
}

// tokenize splits on everything except letters, digits, and apostrophes
// (kept for contractions like "aujourd'hui").
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func atoiPtr(s string) *int {
	n, _ := strconv.Atoi(s)
	return &n
}
