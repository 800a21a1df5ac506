package scatex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestGranularity(t *testing.T) {
	cases := []struct {
		e    Expression
		want string
	}{
		{Day{Year: ip(2023), Month: 10, Day: 7}, "day"},
		{Month{Month: 3}, "month"},
		{Year{Digits: 2014}, "year"},
		{Minute{Hour: 15, Minute: 30}, "minute"},
		{Next{Interval: DayOfWeek{Day: time.Monday}}, "day"},
		{Last{Interval: Repeating{Unit: UnitWeek}}, "week"},
		{Shift{Interval: Today{}, Period: Period{Unit: UnitDay, Value: 3}, Direction: Before}, "today"},
		{This{Interval: MonthOfYear{Month: time.May}}, "month"},
		{Today{}, "today"},
		{Now{}, "now"},
		{Unknown{}, "unknown"},
	}
	for _, c := range cases {
		if got := Granularity(c.e); got != c.want {
			t.Errorf("Granularity(%s) = %q, want %q", FormatExpression(c.e), got, c.want)
		}
	}
}

func TestFormatExpression(t *testing.T) {
	s := Shift{Interval: Today{}, Period: Period{Unit: UnitDay, Value: 3}, Direction: Before}
	if got := FormatExpression(s); got != "Shift(Today, 3 day, before)" {
		t.Errorf("format = %q", got)
	}

	d := Day{Month: 10, Day: 7}
	if got := FormatExpression(d); got != "Day(?-10-07)" {
		t.Errorf("format = %q", got)
	}
}

func TestMarshalExpression_TaggedTree(t *testing.T) {
	e := Next{Interval: DayOfWeek{Day: time.Monday}}
	raw, err := MarshalExpression(e)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if m["type"] != "Next" {
		t.Errorf("type = %v", m["type"])
	}
	inner, ok := m["interval"].(map[string]any)
	if !ok || inner["type"] != "DayOfWeek" || inner["day"] != "Monday" {
		t.Errorf("interval = %#v", m["interval"])
	}
}

func TestMarshalExpression_NullableYear(t *testing.T) {
	raw, err := MarshalExpression(Day{Month: 10, Day: 7})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	if v, present := m["year"]; !present || v != nil {
		t.Errorf("year = %v, want explicit null", v)
	}
}
