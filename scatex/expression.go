package scatex

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Expression is the sealed sum type at the center of the model. The
// variant set is closed: Year, Month, Day, Hour, Minute, Second,
// DayOfWeek, MonthOfYear, Repeating, This, Last, Next, Shift, Today,
// Yesterday, Tomorrow, Now, and Unknown. Evaluate handles every variant
// exhaustively.
type Expression interface {
	isExpression()
}

// ConstructionError reports an invalid field passed to a variant
// constructor. It wraps the underlying validation error, which names the
// offending field.
type ConstructionError struct {
	Variant string
	Err     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("scatex: invalid %s: %v", e.Variant, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func constructionErr(variant string, err error) error {
	return &ConstructionError{Variant: variant, Err: err}
}

// Year is a specific calendar year.
type Year struct {
	Digits int
}

// Month is a specific month; the year may be unknown.
type Month struct {
	Year  *int
	Month int // 1-12
}

// Day is a specific calendar day; the year may be unknown.
type Day struct {
	Year  *int
	Month int // 1-12
	Day   int // 1-31
}

// Hour is a specific clock hour. The date part is optional so that
// time-only references ("15:00") stay representable; missing date fields
// make the expression unresolvable, exactly like a missing year.
type Hour struct {
	Year  *int
	Month *int
	Day   *int
	Hour  int // 0-23
}

// Minute is a specific minute within an hour.
type Minute struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   int // 0-23
	Minute int // 0-59
}

// Second is a specific second, the finest absolute granularity.
type Second struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// DayOfWeek is an abstract weekday, not anchored to a date. It gains
// meaning only inside This/Last/Next/Shift.
type DayOfWeek struct {
	Day time.Weekday
}

// MonthOfYear is an abstract month-of-year, not anchored to a year.
type MonthOfYear struct {
	Month time.Month
}

// Repeating denotes whole calendar-aligned periods of a unit. It is the
// implicit base for This/Last/Next ("last week" = Last(Repeating(week))).
type Repeating struct {
	Unit Unit
}

// This resolves its interval to the occurrence in the anchor's current
// cycle.
type This struct {
	Interval Expression
}

// Last resolves its interval to the nearest occurrence strictly before
// the anchor's own occurrence.
type Last struct {
	Interval Expression
}

// Next resolves its interval to the nearest occurrence strictly after
// the anchor's own occurrence.
type Next struct {
	Interval Expression
}

// Shift translates the boundaries of its interval by Period in Direction.
type Shift struct {
	Interval  Expression
	Period    Period
	Direction Direction
}

// Today is the anchor's own calendar day.
type Today struct{}

// Yesterday is Today shifted one day back.
type Yesterday struct{}

// Tomorrow is Today shifted one day forward.
type Tomorrow struct{}

// Now is the anchor instant itself, a zero-width interval.
type Now struct{}

// Unknown marks input that was recognized as date-like but is not
// representable. It is always unresolvable.
type Unknown struct{}

func (Year) isExpression()        {}
func (Month) isExpression()       {}
func (Day) isExpression()         {}
func (Hour) isExpression()        {}
func (Minute) isExpression()      {}
func (Second) isExpression()      {}
func (DayOfWeek) isExpression()   {}
func (MonthOfYear) isExpression() {}
func (Repeating) isExpression()   {}
func (This) isExpression()        {}
func (Last) isExpression()        {}
func (Next) isExpression()        {}
func (Shift) isExpression()       {}
func (Today) isExpression()       {}
func (Yesterday) isExpression()   {}
func (Tomorrow) isExpression()    {}
func (Now) isExpression()         {}
func (Unknown) isExpression()     {}

const (
	minYear = 1
	maxYear = 9999
)

// yearRange validates an optional year pointer; nil is always valid.
func yearRange(v interface{}) error {
	y, ok := v.(*int)
	if !ok || y == nil {
		return nil
	}
	if *y < minYear || *y > maxYear {
		return fmt.Errorf("must be between %d and %d", minYear, maxYear)
	}
	return nil
}

// NewYear builds a Year expression.
func NewYear(digits int) (Year, error) {
	y := Year{Digits: digits}
	err := validation.ValidateStruct(&y,
		validation.Field(&y.Digits, validation.Required, validation.Min(minYear), validation.Max(maxYear)),
	)
	if err != nil {
		return Year{}, constructionErr("Year", err)
	}
	return y, nil
}

// NewMonth builds a Month expression; year may be nil.
func NewMonth(year *int, month int) (Month, error) {
	m := Month{Year: year, Month: month}
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Year, validation.By(yearRange)),
		validation.Field(&m.Month, validation.Required, validation.Min(1), validation.Max(12)),
	)
	if err != nil {
		return Month{}, constructionErr("Month", err)
	}
	return m, nil
}

// NewDay builds a Day expression; year may be nil.
func NewDay(year *int, month, day int) (Day, error) {
	d := Day{Year: year, Month: month, Day: day}
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Year, validation.By(yearRange)),
		validation.Field(&d.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&d.Day, validation.Required, validation.Min(1), validation.Max(31)),
	)
	if err != nil {
		return Day{}, constructionErr("Day", err)
	}
	return d, nil
}

// validateDatePart enforces the containment chain on an optional date:
// a day needs a month, and a year needs a month and day.
func validateDatePart(variant string, year, month, day *int) error {
	if (month == nil) != (day == nil) {
		return constructionErr(variant, errors.New("month and day must be given together"))
	}
	if year != nil && month == nil {
		return constructionErr(variant, errors.New("year requires month and day"))
	}
	if err := yearRange(year); err != nil {
		return constructionErr(variant, fmt.Errorf("year: %v", err))
	}
	if month != nil && (*month < 1 || *month > 12) {
		return constructionErr(variant, errors.New("month: must be between 1 and 12"))
	}
	if day != nil && (*day < 1 || *day > 31) {
		return constructionErr(variant, errors.New("day: must be between 1 and 31"))
	}
	return nil
}

func validateClock(variant string, hour, minute, second int) error {
	if hour < 0 || hour > 23 {
		return constructionErr(variant, errors.New("hour: must be between 0 and 23"))
	}
	if minute < 0 || minute > 59 {
		return constructionErr(variant, errors.New("minute: must be between 0 and 59"))
	}
	if second < 0 || second > 59 {
		return constructionErr(variant, errors.New("second: must be between 0 and 59"))
	}
	return nil
}

// NewHour builds an Hour expression; the date part may be absent.
func NewHour(year, month, day *int, hour int) (Hour, error) {
	if err := validateDatePart("Hour", year, month, day); err != nil {
		return Hour{}, err
	}
	if err := validateClock("Hour", hour, 0, 0); err != nil {
		return Hour{}, err
	}
	return Hour{Year: year, Month: month, Day: day, Hour: hour}, nil
}

// NewMinute builds a Minute expression; the date part may be absent.
func NewMinute(year, month, day *int, hour, minute int) (Minute, error) {
	if err := validateDatePart("Minute", year, month, day); err != nil {
		return Minute{}, err
	}
	if err := validateClock("Minute", hour, minute, 0); err != nil {
		return Minute{}, err
	}
	return Minute{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}, nil
}

// NewSecond builds a Second expression; the date part may be absent.
func NewSecond(year, month, day *int, hour, minute, second int) (Second, error) {
	if err := validateDatePart("Second", year, month, day); err != nil {
		return Second{}, err
	}
	if err := validateClock("Second", hour, minute, second); err != nil {
		return Second{}, err
	}
	return Second{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, nil
}

// NewDayOfWeek builds an abstract weekday reference.
func NewDayOfWeek(d time.Weekday) (DayOfWeek, error) {
	if d < time.Sunday || d > time.Saturday {
		return DayOfWeek{}, constructionErr("DayOfWeek", fmt.Errorf("day: invalid weekday %d", int(d)))
	}
	return DayOfWeek{Day: d}, nil
}

// NewMonthOfYear builds an abstract month-of-year reference.
func NewMonthOfYear(m time.Month) (MonthOfYear, error) {
	if m < time.January || m > time.December {
		return MonthOfYear{}, constructionErr("MonthOfYear", fmt.Errorf("month: invalid month %d", int(m)))
	}
	return MonthOfYear{Month: m}, nil
}

// NewRepeating builds a calendar-aligned recurring period of unit.
func NewRepeating(u Unit) (Repeating, error) {
	if u < UnitSecond || u > UnitYear {
		return Repeating{}, constructionErr("Repeating", fmt.Errorf("unit: invalid unit %d", int(u)))
	}
	return Repeating{Unit: u}, nil
}

// NewPeriod builds a non-negative scalar magnitude of a unit.
func NewPeriod(u Unit, value int) (Period, error) {
	if u < UnitSecond || u > UnitYear {
		return Period{}, constructionErr("Period", fmt.Errorf("unit: invalid unit %d", int(u)))
	}
	if value < 0 {
		return Period{}, constructionErr("Period", errors.New("value: must be non-negative"))
	}
	return Period{Unit: u, Value: value}, nil
}

// NewThis wraps an anchor-relative interval reference.
func NewThis(interval Expression) (This, error) {
	if interval == nil {
		return This{}, constructionErr("This", errors.New("interval: required"))
	}
	return This{Interval: interval}, nil
}

// NewLast wraps an anchor-relative interval reference.
func NewLast(interval Expression) (Last, error) {
	if interval == nil {
		return Last{}, constructionErr("Last", errors.New("interval: required"))
	}
	return Last{Interval: interval}, nil
}

// NewNext wraps an anchor-relative interval reference.
func NewNext(interval Expression) (Next, error) {
	if interval == nil {
		return Next{}, constructionErr("Next", errors.New("interval: required"))
	}
	return Next{Interval: interval}, nil
}

// NewShift builds a translated interval reference.
func NewShift(interval Expression, period Period, direction Direction) (Shift, error) {
	if interval == nil {
		return Shift{}, constructionErr("Shift", errors.New("interval: required"))
	}
	if period.Value < 0 {
		return Shift{}, constructionErr("Shift", errors.New("period: value must be non-negative"))
	}
	if direction != Before && direction != After {
		return Shift{}, constructionErr("Shift", fmt.Errorf("direction: invalid direction %d", int(direction)))
	}
	return Shift{Interval: interval, Period: period, Direction: direction}, nil
}
