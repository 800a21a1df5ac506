package scatex

import "time"

// Interval is a closed [Start, End] range at second resolution. Both
// bounds are inclusive instants of the denoted period.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the interval, bounds included.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Evaluate resolves an expression against a caller-supplied anchor
// instant. It returns the concrete interval the expression denotes and
// true, or a zero Interval and false when the expression lacks the
// information to resolve (missing year, Unknown, a pattern with no
// occurrence to step to). Insufficiency is a property of the
// (expression, anchor) pair, not an error; Evaluate never fails for
// well-formed nodes.
//
// The anchor's location is used for all calendar arithmetic and the
// anchor is truncated to second resolution first.
func Evaluate(e Expression, anchor time.Time) (Interval, bool) {
	anchor = anchor.Truncate(time.Second)

	switch v := e.(type) {
	case Year:
		start := time.Date(v.Digits, time.January, 1, 0, 0, 0, 0, anchor.Location())
		return yearInterval(start), true

	case Month:
		if v.Year == nil {
			return Interval{}, false
		}
		return monthInterval(*v.Year, time.Month(v.Month), anchor.Location()), true

	case Day:
		if v.Year == nil {
			return Interval{}, false
		}
		return dayInterval(time.Date(*v.Year, time.Month(v.Month), v.Day, 0, 0, 0, 0, anchor.Location())), true

	case Hour:
		if v.Year == nil || v.Month == nil || v.Day == nil {
			return Interval{}, false
		}
		return Interval{
			Start: time.Date(*v.Year, time.Month(*v.Month), *v.Day, v.Hour, 0, 0, 0, anchor.Location()),
			End:   time.Date(*v.Year, time.Month(*v.Month), *v.Day, v.Hour, 59, 59, 0, anchor.Location()),
		}, true

	case Minute:
		if v.Year == nil || v.Month == nil || v.Day == nil {
			return Interval{}, false
		}
		return Interval{
			Start: time.Date(*v.Year, time.Month(*v.Month), *v.Day, v.Hour, v.Minute, 0, 0, anchor.Location()),
			End:   time.Date(*v.Year, time.Month(*v.Month), *v.Day, v.Hour, v.Minute, 59, 0, anchor.Location()),
		}, true

	case Second:
		if v.Year == nil || v.Month == nil || v.Day == nil {
			return Interval{}, false
		}
		at := time.Date(*v.Year, time.Month(*v.Month), *v.Day, v.Hour, v.Minute, v.Second, 0, anchor.Location())
		return Interval{Start: at, End: at}, true

	case Today:
		return dayInterval(anchor), true

	case Yesterday:
		return dayInterval(anchor.AddDate(0, 0, -1)), true

	case Tomorrow:
		return dayInterval(anchor.AddDate(0, 0, 1)), true

	case Now:
		return Interval{Start: anchor, End: anchor}, true

	case Repeating:
		return unitInterval(anchor, v.Unit), true

	case This:
		return evalThis(v.Interval, anchor)

	case Next:
		return evalNext(v.Interval, anchor)

	case Last:
		return evalLast(v.Interval, anchor)

	case Shift:
		inner, ok := Evaluate(v.Interval, anchor)
		if !ok {
			return Interval{}, false
		}
		n := v.Period.Value
		if v.Direction == Before {
			n = -n
		}
		return Interval{
			Start: addUnits(inner.Start, v.Period.Unit, n),
			End:   addUnits(inner.End, v.Period.Unit, n),
		}, true

	case DayOfWeek, MonthOfYear:
		// Abstract references carry no anchor cycle of their own; they
		// resolve only inside This/Last/Next/Shift.
		return Interval{}, false

	case Unknown:
		return Interval{}, false
	}

	return Interval{}, false
}

// evalThis resolves the occurrence in the anchor's current cycle: the
// anchor's week for weekdays, the anchor's year for months-of-year, the
// containing period for Repeating. Any other inner node is itself
// anchor-relative and is evaluated directly.
func evalThis(inner Expression, anchor time.Time) (Interval, bool) {
	switch v := inner.(type) {
	case Repeating:
		return unitInterval(anchor, v.Unit), true
	case DayOfWeek:
		week := startOfWeek(anchor)
		return dayInterval(week.AddDate(0, 0, mondayIndex(v.Day))), true
	case MonthOfYear:
		return monthInterval(anchor.Year(), v.Month, anchor.Location()), true
	default:
		return Evaluate(inner, anchor)
	}
}

// evalNext resolves the nearest occurrence strictly after the anchor's
// own occurrence. The anchor's current weekday, month, or period never
// counts: "next Monday" on a Monday is seven days out.
func evalNext(inner Expression, anchor time.Time) (Interval, bool) {
	switch v := inner.(type) {
	case Repeating:
		next := addUnits(startOfUnit(anchor, v.Unit), v.Unit, 1)
		return unitInterval(next, v.Unit), true
	case DayOfWeek:
		day := anchor
		for {
			day = day.AddDate(0, 0, 1)
			if day.Weekday() == v.Day {
				return dayInterval(day), true
			}
		}
	case MonthOfYear:
		year := anchor.Year()
		if anchor.Month() >= v.Month {
			year++
		}
		return monthInterval(year, v.Month, anchor.Location()), true
	default:
		// Non-recurring nodes denote no pattern to step forward through.
		return Interval{}, false
	}
}

// evalLast is symmetric to evalNext: strictly before the anchor's own
// occurrence.
func evalLast(inner Expression, anchor time.Time) (Interval, bool) {
	switch v := inner.(type) {
	case Repeating:
		prev := addUnits(startOfUnit(anchor, v.Unit), v.Unit, -1)
		return unitInterval(prev, v.Unit), true
	case DayOfWeek:
		day := anchor
		for {
			day = day.AddDate(0, 0, -1)
			if day.Weekday() == v.Day {
				return dayInterval(day), true
			}
		}
	case MonthOfYear:
		year := anchor.Year()
		if anchor.Month() <= v.Month {
			year--
		}
		return monthInterval(year, v.Month, anchor.Location()), true
	default:
		return Interval{}, false
	}
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayInterval bounds the calendar day containing t. Both bounds are
// built from wall-clock fields rather than duration arithmetic, so days
// shortened or stretched by a DST transition still end at 23:59:59.
func dayInterval(t time.Time) Interval {
	return Interval{
		Start: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		End:   time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location()),
	}
}

// monthInterval bounds a calendar month, leap years included.
func monthInterval(year int, month time.Month, loc *time.Location) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := daysIn(year, month)
	return Interval{Start: start, End: time.Date(year, month, last, 23, 59, 59, 0, loc)}
}

func yearInterval(start time.Time) Interval {
	return Interval{
		Start: start,
		End:   time.Date(start.Year(), time.December, 31, 23, 59, 59, 0, start.Location()),
	}
}

// mondayIndex maps a weekday to its offset within a Monday-start week.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// startOfWeek returns midnight on the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -mondayIndex(t.Weekday()))
}

// startOfUnit returns the first instant of the calendar-aligned period of
// u containing t. Weeks start Monday.
func startOfUnit(t time.Time, u Unit) time.Time {
	switch u {
	case UnitSecond:
		return t.Truncate(time.Second)
	case UnitMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case UnitHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case UnitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case UnitWeek:
		return startOfWeek(t)
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case UnitYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// unitInterval bounds the calendar-aligned period of u containing t.
func unitInterval(t time.Time, u Unit) Interval {
	start := startOfUnit(t, u)
	return Interval{Start: start, End: addUnits(start, u, 1).Add(-time.Second)}
}

// addUnits translates t by n units using calendar-correct arithmetic.
// Month and year steps clamp the day-of-month to the last valid day of
// the target month (Jan 31 + 1 month = Feb 28/29), rather than letting
// the excess spill into the following month.
func addUnits(t time.Time, u Unit, n int) time.Time {
	switch u {
	case UnitSecond:
		return t.Add(time.Duration(n) * time.Second)
	case UnitMinute:
		return t.Add(time.Duration(n) * time.Minute)
	case UnitHour:
		return t.Add(time.Duration(n) * time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, n)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitMonth:
		return addMonths(t, n)
	case UnitYear:
		return addMonths(t, 12*n)
	}
	return t
}

func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + n
	year += total / 12
	rem := total % 12
	if rem < 0 {
		rem += 12
		year--
	}
	target := time.Month(rem + 1)
	if last := daysIn(year, target); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(year, target, day, hour, min, sec, 0, t.Location())
}
