// Package scatex implements the SCATEX temporal expression tree: a typed,
// compositional representation of absolute, relative, and recurring
// date/time references, together with a pure evaluator that resolves a
// tree against a caller-supplied anchor instant.
//
// Expressions are immutable once constructed and carry no behavior beyond
// identity and field access; all resolution semantics live in Evaluate.
// Every function in this package is a total function of its inputs and is
// safe for concurrent use.
package scatex

import "fmt"

// Unit is a calendar/clock granularity. Units are ordered from finest
// (UnitSecond) to coarsest (UnitYear); the ordering determines interval
// width when an end boundary is derived from a start boundary.
type Unit int

const (
	UnitSecond Unit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

var unitNames = [...]string{
	UnitSecond: "second",
	UnitMinute: "minute",
	UnitHour:   "hour",
	UnitDay:    "day",
	UnitWeek:   "week",
	UnitMonth:  "month",
	UnitYear:   "year",
}

// String returns the lowercase unit name.
func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// UnitFromName maps a lowercase unit name back to its Unit.
func UnitFromName(name string) (Unit, bool) {
	for u, n := range unitNames {
		if n == name {
			return Unit(u), true
		}
	}
	return 0, false
}

// Period is a scalar magnitude of a unit. It appears only inside Shift.
type Period struct {
	Unit  Unit
	Value int
}

// String renders the period as "<value> <unit>".
func (p Period) String() string {
	return fmt.Sprintf("%d %s", p.Value, p.Unit)
}

// Direction says which way a Shift translates an interval's boundaries.
type Direction int

const (
	// Before subtracts the period from both boundaries.
	Before Direction = iota
	// After adds the period to both boundaries.
	After
)

// String returns "before" or "after".
func (d Direction) String() string {
	switch d {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
