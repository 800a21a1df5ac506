package scatex

import (
	"errors"
	"time"
)

// Keyword is the relative-keyword tag of a fragment.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordToday
	KeywordYesterday
	KeywordTomorrow
	KeywordNow
)

// Modifier is the this/last/next tag of a fragment.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierThis
	ModifierLast
	ModifierNext
)

// ShiftSpec is a recognizer-emitted relative shift descriptor
// ("3 days ago", "in 2 weeks").
type ShiftSpec struct {
	Value     int
	Unit      Unit
	Direction Direction
}

// Fragment is the structured record a recognizer emits for a single
// date-like span. Every field is optional; the recognizer has already
// selected one best interpretation, so Build never arbitrates between
// competing readings.
type Fragment struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *int

	Weekday    *time.Weekday
	MonthName  *time.Month
	RepeatUnit *Unit

	Keyword  Keyword
	Shift    *ShiftSpec
	Modifier Modifier

	// Unrepresentable marks a span the recognizer judged date-like but
	// could not structure. It maps to Unknown.
	Unrepresentable bool
}

// Build maps one fragment to exactly one expression node. Construction
// errors from the variant constructors propagate unchanged.
func Build(f Fragment) (Expression, error) {
	if f.Unrepresentable {
		return Unknown{}, nil
	}

	switch f.Keyword {
	case KeywordToday:
		return Today{}, nil
	case KeywordYesterday:
		return Yesterday{}, nil
	case KeywordTomorrow:
		return Tomorrow{}, nil
	case KeywordNow:
		return Now{}, nil
	}

	if f.Shift != nil {
		period, err := NewPeriod(f.Shift.Unit, f.Shift.Value)
		if err != nil {
			return nil, err
		}
		sh, err := NewShift(Today{}, period, f.Shift.Direction)
		if err != nil {
			return nil, err
		}
		return sh, nil
	}

	if f.Weekday != nil {
		dow, err := NewDayOfWeek(*f.Weekday)
		if err != nil {
			return nil, err
		}
		return wrapModifier(f.Modifier, dow)
	}

	if f.RepeatUnit != nil {
		rep, err := NewRepeating(*f.RepeatUnit)
		if err != nil {
			return nil, err
		}
		return wrapModifier(f.Modifier, rep)
	}

	// A bare month name with no surrounding numbers is an abstract
	// month-of-year; combined with a day or year it is an absolute date.
	if f.MonthName != nil {
		if f.Day == nil && f.Year == nil {
			moy, err := NewMonthOfYear(*f.MonthName)
			if err != nil {
				return nil, err
			}
			return wrapModifier(f.Modifier, moy)
		}
		m := int(*f.MonthName)
		f.Month = &m
	}

	return buildAbsolute(f)
}

// wrapModifier wraps an abstract interval reference per the fragment's
// this/last/next tag. No tag means the speaker's current cycle.
func wrapModifier(m Modifier, inner Expression) (Expression, error) {
	switch m {
	case ModifierLast:
		w, err := NewLast(inner)
		if err != nil {
			return nil, err
		}
		return w, nil
	case ModifierNext:
		w, err := NewNext(inner)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		w, err := NewThis(inner)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// buildAbsolute picks the finest absolute variant the numeric fields pin
// down. Missing intermediate fields (a minute without an hour, a day
// without a month) are construction errors, not partial expressions.
func buildAbsolute(f Fragment) (Expression, error) {
	switch {
	case f.Second != nil:
		if f.Minute == nil || f.Hour == nil {
			return nil, constructionErr("Second", errors.New("hour and minute: required with second"))
		}
		sec, err := NewSecond(f.Year, f.Month, f.Day, *f.Hour, *f.Minute, *f.Second)
		if err != nil {
			return nil, err
		}
		return sec, nil

	case f.Minute != nil:
		if f.Hour == nil {
			return nil, constructionErr("Minute", errors.New("hour: required with minute"))
		}
		min, err := NewMinute(f.Year, f.Month, f.Day, *f.Hour, *f.Minute)
		if err != nil {
			return nil, err
		}
		return min, nil

	case f.Hour != nil:
		h, err := NewHour(f.Year, f.Month, f.Day, *f.Hour)
		if err != nil {
			return nil, err
		}
		return h, nil

	case f.Day != nil:
		if f.Month == nil {
			return nil, constructionErr("Day", errors.New("month: required with day"))
		}
		d, err := NewDay(f.Year, *f.Month, *f.Day)
		if err != nil {
			return nil, err
		}
		return d, nil

	case f.Month != nil:
		m, err := NewMonth(f.Year, *f.Month)
		if err != nil {
			return nil, err
		}
		return m, nil

	case f.Year != nil:
		y, err := NewYear(*f.Year)
		if err != nil {
			return nil, err
		}
		return y, nil
	}

	return nil, constructionErr("Fragment", errors.New("no recognizable fields"))
}
