package recognize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BenjaminIrwin/scatexparser/scatex"
)

func newRecognizer(t *testing.T, languages ...string) *Recognizer {
	t.Helper()
	r, err := New(languages)
	if err != nil {
		t.Fatalf("New(%v): %v", languages, err)
	}
	return r
}

func mustRecognize(t *testing.T, r *Recognizer, text string) (scatex.Fragment, string) {
	t.Helper()
	f, locale, ok := r.Recognize(text)
	if !ok {
		t.Fatalf("Recognize(%q): no match", text)
	}
	return f, locale
}

func wantInt(t *testing.T, field string, got *int, want int) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: got nil, want %d", field, want)
	}
	if *got != want {
		t.Fatalf("%s: got %d, want %d", field, *got, want)
	}
}

func TestRecognizeEnglishFullDate(t *testing.T) {
	r := newRecognizer(t, "en")

	f, locale := mustRecognize(t, r, "October 7, 2023")
	if locale != "en" {
		t.Fatalf("locale: got %q, want en", locale)
	}
	if f.MonthName == nil || *f.MonthName != time.October {
		t.Fatalf("month name: got %v, want October", f.MonthName)
	}
	wantInt(t, "day", f.Day, 7)
	wantInt(t, "year", f.Year, 2023)
}

func TestRecognizeMonthAndYear(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "March 2015")
	if f.MonthName == nil || *f.MonthName != time.March {
		t.Fatalf("month name: got %v, want March", f.MonthName)
	}
	wantInt(t, "year", f.Year, 2015)
	if f.Day != nil {
		t.Fatalf("day: got %d, want nil", *f.Day)
	}
}

func TestRecognizeDayWithoutYear(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "October 7")
	wantInt(t, "day", f.Day, 7)
	if f.Year != nil {
		t.Fatalf("year: got %d, want nil", *f.Year)
	}
}

func TestRecognizeBareYear(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "2014")
	wantInt(t, "year", f.Year, 2014)
	if f.MonthName != nil || f.Month != nil || f.Day != nil {
		t.Fatal("bare year must carry no month or day")
	}
}

func TestRecognizeNumericLayouts(t *testing.T) {
	r := newRecognizer(t, "en")

	tests := []struct {
		text             string
		year, month, day int
	}{
		{"2023-10-07", 2023, 10, 7},
		{"07/10/2023", 2023, 10, 7},
		{"07.10.2023", 2023, 10, 7},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			f, _ := mustRecognize(t, r, tc.text)
			wantInt(t, "year", f.Year, tc.year)
			wantInt(t, "month", f.Month, tc.month)
			wantInt(t, "day", f.Day, tc.day)
		})
	}
}

func TestRecognizeClock(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "15:30")
	wantInt(t, "hour", f.Hour, 15)
	wantInt(t, "minute", f.Minute, 30)
	if f.Second != nil {
		t.Fatalf("second: got %d, want nil", *f.Second)
	}
	if f.Year != nil || f.Month != nil || f.Day != nil {
		t.Fatal("time-only input must carry no date fields")
	}

	f, _ = mustRecognize(t, r, "15:30:45")
	wantInt(t, "second", f.Second, 45)
}

func TestRecognizeDateWithClock(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "2023-10-07 15:30")
	wantInt(t, "year", f.Year, 2023)
	wantInt(t, "month", f.Month, 10)
	wantInt(t, "day", f.Day, 7)
	wantInt(t, "hour", f.Hour, 15)
	wantInt(t, "minute", f.Minute, 30)
}

func TestRecognizeKeywords(t *testing.T) {
	r := newRecognizer(t, "en")

	tests := []struct {
		text string
		want scatex.Keyword
	}{
		{"today", scatex.KeywordToday},
		{"Yesterday", scatex.KeywordYesterday},
		{"tomorrow", scatex.KeywordTomorrow},
		{"now", scatex.KeywordNow},
	}
	for _, tc := range tests {
		f, _ := mustRecognize(t, r, tc.text)
		if f.Keyword != tc.want {
			t.Fatalf("%q: keyword got %v, want %v", tc.text, f.Keyword, tc.want)
		}
	}
}

func TestRecognizeRelativeShift(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "3 days ago")
	if f.Shift == nil {
		t.Fatal("shift: got nil")
	}
	if f.Shift.Value != 3 || f.Shift.Unit != scatex.UnitDay || f.Shift.Direction != scatex.Before {
		t.Fatalf("shift: got %+v", *f.Shift)
	}

	f, _ = mustRecognize(t, r, "in 2 weeks")
	if f.Shift == nil {
		t.Fatal("shift: got nil")
	}
	if f.Shift.Value != 2 || f.Shift.Unit != scatex.UnitWeek || f.Shift.Direction != scatex.After {
		t.Fatalf("shift: got %+v", *f.Shift)
	}
}

func TestRecognizeWeekdayWithModifier(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "next Monday")
	if f.Weekday == nil || *f.Weekday != time.Monday {
		t.Fatalf("weekday: got %v, want Monday", f.Weekday)
	}
	if f.Modifier != scatex.ModifierNext {
		t.Fatalf("modifier: got %v, want next", f.Modifier)
	}

	f, _ = mustRecognize(t, r, "last friday")
	if f.Weekday == nil || *f.Weekday != time.Friday {
		t.Fatalf("weekday: got %v, want Friday", f.Weekday)
	}
	if f.Modifier != scatex.ModifierLast {
		t.Fatalf("modifier: got %v, want last", f.Modifier)
	}
}

func TestRecognizeRepeatingUnit(t *testing.T) {
	r := newRecognizer(t, "en")

	f, _ := mustRecognize(t, r, "last week")
	if f.RepeatUnit == nil || *f.RepeatUnit != scatex.UnitWeek {
		t.Fatalf("unit: got %v, want week", f.RepeatUnit)
	}
	if f.Modifier != scatex.ModifierLast {
		t.Fatalf("modifier: got %v, want last", f.Modifier)
	}

	f, _ = mustRecognize(t, r, "this month")
	if f.RepeatUnit == nil || *f.RepeatUnit != scatex.UnitMonth {
		t.Fatalf("unit: got %v, want month", f.RepeatUnit)
	}
	if f.Modifier != scatex.ModifierThis {
		t.Fatalf("modifier: got %v, want this", f.Modifier)
	}
}

func TestRecognizeSpanish(t *testing.T) {
	r := newRecognizer(t, "es")

	f, locale := mustRecognize(t, r, "el 7 de octubre de 2023")
	if locale != "es" {
		t.Fatalf("locale: got %q, want es", locale)
	}
	if f.MonthName == nil || *f.MonthName != time.October {
		t.Fatalf("month name: got %v, want October", f.MonthName)
	}
	wantInt(t, "day", f.Day, 7)
	wantInt(t, "year", f.Year, 2023)

	f, _ = mustRecognize(t, r, "hace 3 días")
	if f.Shift == nil || f.Shift.Value != 3 || f.Shift.Unit != scatex.UnitDay || f.Shift.Direction != scatex.Before {
		t.Fatalf("shift: got %+v", f.Shift)
	}

	f, _ = mustRecognize(t, r, "mañana")
	if f.Keyword != scatex.KeywordTomorrow {
		t.Fatalf("keyword: got %v, want tomorrow", f.Keyword)
	}
}

func TestRecognizeFrench(t *testing.T) {
	r := newRecognizer(t, "fr")

	f, locale := mustRecognize(t, r, "7 octobre 2023")
	if locale != "fr" {
		t.Fatalf("locale: got %q, want fr", locale)
	}
	wantInt(t, "day", f.Day, 7)
	wantInt(t, "year", f.Year, 2023)

	f, _ = mustRecognize(t, r, "il y a 3 jours")
	if f.Shift == nil || f.Shift.Value != 3 || f.Shift.Unit != scatex.UnitDay || f.Shift.Direction != scatex.Before {
		t.Fatalf("shift: got %+v", f.Shift)
	}

	f, _ = mustRecognize(t, r, "aujourd'hui")
	if f.Keyword != scatex.KeywordToday {
		t.Fatalf("keyword: got %v, want today", f.Keyword)
	}
}

func TestRecognizeLocaleOrder(t *testing.T) {
	r := newRecognizer(t, "en", "es")

	_, locale := mustRecognize(t, r, "hoy")
	if locale != "es" {
		t.Fatalf("locale: got %q, want es", locale)
	}

	// Numeric layouts are attributed to the primary locale.
	_, locale = mustRecognize(t, r, "2023-10-07")
	if locale != "en" {
		t.Fatalf("locale: got %q, want en", locale)
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	r := newRecognizer(t, "en")

	for _, text := range []string{"", "   ", "this is not a date", "hello world"} {
		if _, _, ok := r.Recognize(text); ok {
			t.Fatalf("Recognize(%q): unexpected match", text)
		}
	}
}

func TestNewRejectsUnknownLocale(t *testing.T) {
	if _, err := New([]string{"de"}); err == nil {
		t.Fatal("expected error for unknown locale")
	}
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty language list")
	}
}

func TestSupportedLocales(t *testing.T) {
	got := Supported()
	want := []string{"en", "es", "fr"}
	if len(got) != len(want) {
		t.Fatalf("Supported(): got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Supported(): got %v, want %v", got, want)
		}
	}
}

func TestOverridesExtendLocale(t *testing.T) {
	dir := t.TempDir()
	override := []byte("locale: en\nkeywords:\n  rn: now\n")
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewWithOverrides([]string{"en"}, dir)
	if err != nil {
		t.Fatalf("NewWithOverrides: %v", err)
	}

	f, _ := mustRecognize(t, r, "rn")
	if f.Keyword != scatex.KeywordNow {
		t.Fatalf("keyword: got %v, want now", f.Keyword)
	}

	// The base vocabulary survives the merge.
	f, _ = mustRecognize(t, r, "today")
	if f.Keyword != scatex.KeywordToday {
		t.Fatalf("keyword: got %v, want today", f.Keyword)
	}
}

func TestOverridesAddLocale(t *testing.T) {
	dir := t.TempDir()
	override := []byte(`locale: de
weekdays:
  montag: 1
keywords:
  heute: today
units:
  tag: day
  tage: day
  tagen: day
relative:
  vor: before
`)
	if err := os.WriteFile(filepath.Join(dir, "de.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewWithOverrides([]string{"de"}, dir)
	if err != nil {
		t.Fatalf("NewWithOverrides: %v", err)
	}

	f, locale := mustRecognize(t, r, "heute")
	if locale != "de" {
		t.Fatalf("locale: got %q, want de", locale)
	}
	if f.Keyword != scatex.KeywordToday {
		t.Fatalf("keyword: got %v, want today", f.Keyword)
	}

	f, _ = mustRecognize(t, r, "vor 3 tagen")
	if f.Shift == nil || f.Shift.Value != 3 || f.Shift.Direction != scatex.Before {
		t.Fatalf("shift: got %+v", f.Shift)
	}
}

func TestOverridesRejectBadTag(t *testing.T) {
	dir := t.TempDir()
	override := []byte("locale: en\nkeywords:\n  bogus: sometime\n")
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewWithOverrides([]string{"en"}, dir); err == nil {
		t.Fatal("expected validation error for unknown tag")
	}
}

func TestMissingOverridesDirIsIgnored(t *testing.T) {
	r, err := NewWithOverrides([]string{"en"}, filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("NewWithOverrides: %v", err)
	}
	if _, _, ok := r.Recognize("today"); !ok {
		t.Fatal("embedded vocabulary must still load")
	}
}
