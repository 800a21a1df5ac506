package scatex

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func wantConstructionErr(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a construction error")
	}
	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatalf("error is %T, want *ConstructionError", err)
	}
	if !strings.Contains(strings.ToLower(ce.Error()), field) {
		t.Errorf("error %q does not name field %q", ce.Error(), field)
	}
}

func TestNewDay_Valid(t *testing.T) {
	d, err := NewDay(ip(2023), 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Month != 10 || d.Day != 7 || *d.Year != 2023 {
		t.Errorf("day = %+v", d)
	}
}

func TestNewDay_NilYearIsPartialNotInvalid(t *testing.T) {
	d, err := NewDay(nil, 10, 7)
	if err != nil {
		t.Fatalf("partial day should construct: %v", err)
	}
	if d.Year != nil {
		t.Error("year should stay nil, never defaulted")
	}
}

func TestNewDay_MonthOutOfRange(t *testing.T) {
	_, err := NewDay(ip(2023), 13, 7)
	wantConstructionErr(t, err, "month")
}

func TestNewDay_DayOutOfRange(t *testing.T) {
	_, err := NewDay(ip(2023), 10, 0)
	wantConstructionErr(t, err, "day")
}

func TestNewMonth_Zero(t *testing.T) {
	_, err := NewMonth(nil, 0)
	wantConstructionErr(t, err, "month")
}

func TestNewYear_OutOfRange(t *testing.T) {
	if _, err := NewYear(0); err == nil {
		t.Error("year 0 should fail")
	}
	if _, err := NewYear(10000); err == nil {
		t.Error("year 10000 should fail")
	}
}

func TestNewMinute_ClockRanges(t *testing.T) {
	_, err := NewMinute(nil, nil, nil, 24, 0)
	wantConstructionErr(t, err, "hour")

	_, err = NewMinute(nil, nil, nil, 12, 60)
	wantConstructionErr(t, err, "minute")

	if _, err := NewMinute(nil, nil, nil, 15, 30); err != nil {
		t.Errorf("time-only minute should construct: %v", err)
	}
}

func TestNewHour_DatePartChain(t *testing.T) {
	// Day without month violates the containment chain.
	_, err := NewHour(nil, nil, ip(7), 12)
	wantConstructionErr(t, err, "month")

	// Year without month/day as well.
	_, err = NewHour(ip(2023), nil, nil, 12)
	wantConstructionErr(t, err, "year")
}

func TestNewDayOfWeek_Invalid(t *testing.T) {
	_, err := NewDayOfWeek(time.Weekday(7))
	wantConstructionErr(t, err, "day")

	if _, err := NewDayOfWeek(time.Sunday); err != nil {
		t.Errorf("Sunday should be valid: %v", err)
	}
}

func TestNewMonthOfYear_Invalid(t *testing.T) {
	_, err := NewMonthOfYear(time.Month(13))
	wantConstructionErr(t, err, "month")
}

func TestNewPeriod_NegativeValue(t *testing.T) {
	_, err := NewPeriod(UnitDay, -1)
	wantConstructionErr(t, err, "value")
}

func TestNewShift_NilInterval(t *testing.T) {
	_, err := NewShift(nil, Period{Unit: UnitDay, Value: 1}, Before)
	wantConstructionErr(t, err, "interval")
}

func TestNewNext_NilInterval(t *testing.T) {
	_, err := NewNext(nil)
	wantConstructionErr(t, err, "interval")
}

func TestUnitOrdering(t *testing.T) {
	if !(UnitSecond < UnitMinute && UnitMinute < UnitHour && UnitHour < UnitDay &&
		UnitDay < UnitWeek && UnitWeek < UnitMonth && UnitMonth < UnitYear) {
		t.Error("unit ordering must run finest to coarsest")
	}
}

func TestUnitFromName_RoundTrip(t *testing.T) {
	for u := UnitSecond; u <= UnitYear; u++ {
		got, ok := UnitFromName(u.String())
		if !ok || got != u {
			t.Errorf("UnitFromName(%q) = %v, %v", u.String(), got, ok)
		}
	}
	if _, ok := UnitFromName("fortnight"); ok {
		t.Error("unknown unit name should not resolve")
	}
}
