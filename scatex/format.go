package scatex

import (
	"fmt"
	"strings"
)

// Granularity derives the coarse period label of a tree: the finest
// absolute granularity it pins down, the unit name for recurring
// references, or the atomic variant name for Today/Now and friends. It
// is a pure function of the tree shape, independent of evaluation.
func Granularity(e Expression) string {
	switch v := e.(type) {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	case DayOfWeek:
		return "day"
	case MonthOfYear:
		return "month"
	case Repeating:
		return v.Unit.String()
	case This:
		return Granularity(v.Interval)
	case Last:
		return Granularity(v.Interval)
	case Next:
		return Granularity(v.Interval)
	case Shift:
		return Granularity(v.Interval)
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	case Tomorrow:
		return "tomorrow"
	case Now:
		return "now"
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

// FormatExpression renders a compact single-line form of a tree, used by
// the CLI and log output. Missing optional fields print as "?".
func FormatExpression(e Expression) string {
	switch v := e.(type) {
	case Year:
		return fmt.Sprintf("Year(%04d)", v.Digits)
	case Month:
		return fmt.Sprintf("Month(%s-%02d)", optYear(v.Year), v.Month)
	case Day:
		return fmt.Sprintf("Day(%s-%02d-%02d)", optYear(v.Year), v.Month, v.Day)
	case Hour:
		return fmt.Sprintf("Hour(%s %02d:00)", optDate(v.Year, v.Month, v.Day), v.Hour)
	case Minute:
		return fmt.Sprintf("Minute(%s %02d:%02d)", optDate(v.Year, v.Month, v.Day), v.Hour, v.Minute)
	case Second:
		return fmt.Sprintf("Second(%s %02d:%02d:%02d)", optDate(v.Year, v.Month, v.Day), v.Hour, v.Minute, v.Second)
	case DayOfWeek:
		return fmt.Sprintf("DayOfWeek(%s)", v.Day)
	case MonthOfYear:
		return fmt.Sprintf("MonthOfYear(%s)", v.Month)
	case Repeating:
		return fmt.Sprintf("Repeating(%s)", v.Unit)
	case This:
		return fmt.Sprintf("This(%s)", FormatExpression(v.Interval))
	case Last:
		return fmt.Sprintf("Last(%s)", FormatExpression(v.Interval))
	case Next:
		return fmt.Sprintf("Next(%s)", FormatExpression(v.Interval))
	case Shift:
		return fmt.Sprintf("Shift(%s, %s, %s)", FormatExpression(v.Interval), v.Period, v.Direction)
	case Today:
		return "Today"
	case Yesterday:
		return "Yesterday"
	case Tomorrow:
		return "Tomorrow"
	case Now:
		return "Now"
	case Unknown:
		return "Unknown"
	}
	return "Unknown"
}

func optYear(y *int) string {
	if y == nil {
		return "?"
	}
	return fmt.Sprintf("%04d", *y)
}

func optDate(y, m, d *int) string {
	if m == nil || d == nil {
		return "?"
	}
	var b strings.Builder
	b.WriteString(optYear(y))
	fmt.Fprintf(&b, "-%02d-%02d", *m, *d)
	return b.String()
}
