package scatexparser

import (
	"testing"
	"time"

	"github.com/BenjaminIrwin/scatexparser/scatex"
)

var anchor = time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC)

func mustParseData(t *testing.T, p *Parser, text string) *Result {
	t.Helper()
	res, ok := p.ParseData(text)
	if !ok {
		t.Fatalf("ParseData(%q): no match", text)
	}
	return res
}

func TestParseFullDate(t *testing.T) {
	expr := Parse("October 7, 2023")
	if expr == nil {
		t.Fatal("Parse returned nil")
	}
	day, ok := expr.(scatex.Day)
	if !ok {
		t.Fatalf("expression type = %T, want scatex.Day", expr)
	}
	if day.Year == nil || *day.Year != 2023 || day.Month != 10 || day.Day != 7 {
		t.Fatalf("unexpected day: %+v", day)
	}

	iv, ok := scatex.Evaluate(expr, anchor)
	if !ok {
		t.Fatal("full date must resolve")
	}
	wantStart := time.Date(2023, 10, 7, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2023, 10, 7, 23, 59, 59, 0, time.UTC)
	if !iv.Start.Equal(wantStart) || !iv.End.Equal(wantEnd) {
		t.Fatalf("interval = [%v, %v]", iv.Start, iv.End)
	}
}

func TestParseDataPeriodAndLocale(t *testing.T) {
	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}

	res := mustParseData(t, p, "October 7, 2023")
	if res.Period != "day" {
		t.Errorf("period = %q, want day", res.Period)
	}
	if res.Locale != "en" {
		t.Errorf("locale = %q, want en", res.Locale)
	}
}

func TestParseMonthResolvesToFullMonth(t *testing.T) {
	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}

	res := mustParseData(t, p, "March 2015")
	if res.Period != "month" {
		t.Errorf("period = %q, want month", res.Period)
	}
	iv, ok := res.Evaluate(anchor)
	if !ok {
		t.Fatal("month with year must resolve")
	}
	if iv.Start.Day() != 1 || iv.Start.Month() != time.March || iv.Start.Year() != 2015 {
		t.Errorf("start = %v", iv.Start)
	}
	if iv.End.Day() != 31 || iv.End.Month() != time.March {
		t.Errorf("end = %v", iv.End)
	}
}

func TestParseYearOnly(t *testing.T) {
	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}

	res := mustParseData(t, p, "2014")
	if res.Period != "year" {
		t.Errorf("period = %q, want year", res.Period)
	}
	iv, ok := res.Evaluate(anchor)
	if !ok {
		t.Fatal("year must resolve")
	}
	if iv.Start.Year() != 2014 || iv.End.Year() != 2014 {
		t.Errorf("interval = [%v, %v]", iv.Start, iv.End)
	}
}

func TestParsePartialDateIsUnresolvable(t *testing.T) {
	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}

	// No year stated: the tree is valid but cannot be resolved.
	res := mustParseData(t, p, "October 7")
	if _, ok := res.Evaluate(anchor); ok {
		t.Fatal("date without year must not resolve")
	}

	res = mustParseData(t, p, "15:30")
	if res.Period != "minute" {
		t.Errorf("period = %q, want minute", res.Period)
	}
	if _, ok := res.Evaluate(anchor); ok {
		t.Fatal("bare time of day must not resolve")
	}
}

func TestParseRelativeExpressions(t *testing.T) {
	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		text      string
		wantStart time.Time
	}{
		{"3 days ago", time.Date(2023, 10, 12, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2023, 10, 14, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"next Monday", time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"last Friday", time.Date(2023, 10, 13, 0, 0, 0, 0, time.UTC)},
		{"this week", time.Date(2023, 10, 9, 0, 0, 0, 0, time.UTC)},
		{"last week", time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			res := mustParseData(t, p, tc.text)
			iv, ok := res.Evaluate(anchor)
			if !ok {
				t.Fatalf("%q must resolve", tc.text)
			}
			if !iv.Start.Equal(tc.wantStart) {
				t.Errorf("start = %v, want %v", iv.Start, tc.wantStart)
			}
		})
	}
}

func TestParseMultilingual(t *testing.T) {
	p, err := NewParser("en", "es", "fr")
	if err != nil {
		t.Fatal(err)
	}

	res := mustParseData(t, p, "hace 3 días")
	if res.Locale != "es" {
		t.Errorf("locale = %q, want es", res.Locale)
	}
	iv, ok := res.Evaluate(anchor)
	if !ok {
		t.Fatal("relative shift must resolve")
	}
	if !iv.Start.Equal(time.Date(2023, 10, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", iv.Start)
	}

	res = mustParseData(t, p, "7 octobre 2023")
	if res.Locale != "fr" {
		t.Errorf("locale = %q, want fr", res.Locale)
	}
	if res.Period != "day" {
		t.Errorf("period = %q, want day", res.Period)
	}
}

func TestParseNoMatch(t *testing.T) {
	if expr := Parse("this is not a date"); expr != nil {
		t.Fatalf("expected nil, got %T", expr)
	}

	p, err := NewParser("en")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.ParseData(""); ok {
		t.Fatal("empty input must not match")
	}
}

func TestNewParserUnknownLocale(t *testing.T) {
	if _, err := NewParser("tlh"); err == nil {
		t.Fatal("expected error for unknown locale")
	}
}
