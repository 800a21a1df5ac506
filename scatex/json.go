package scatex

import "encoding/json"

// EncodeExpression renders a tree as nested tagged maps, suitable for
// JSON transport. Evaluation policy never leaks into the encoding; the
// output mirrors the tree shape exactly.
func EncodeExpression(e Expression) map[string]any {
	switch v := e.(type) {
	case Year:
		return map[string]any{"type": "Year", "digits": v.Digits}
	case Month:
		return map[string]any{"type": "Month", "year": intOrNil(v.Year), "month": v.Month}
	case Day:
		return map[string]any{"type": "Day", "year": intOrNil(v.Year), "month": v.Month, "day": v.Day}
	case Hour:
		return map[string]any{
			"type": "Hour",
			"year": intOrNil(v.Year), "month": intOrNil(v.Month), "day": intOrNil(v.Day),
			"hour": v.Hour,
		}
	case Minute:
		return map[string]any{
			"type": "Minute",
			"year": intOrNil(v.Year), "month": intOrNil(v.Month), "day": intOrNil(v.Day),
			"hour": v.Hour, "minute": v.Minute,
		}
	case Second:
		return map[string]any{
			"type": "Second",
			"year": intOrNil(v.Year), "month": intOrNil(v.Month), "day": intOrNil(v.Day),
			"hour": v.Hour, "minute": v.Minute, "second": v.Second,
		}
	case DayOfWeek:
		return map[string]any{"type": "DayOfWeek", "day": v.Day.String()}
	case MonthOfYear:
		return map[string]any{"type": "MonthOfYear", "month": v.Month.String()}
	case Repeating:
		return map[string]any{"type": "Repeating", "unit": v.Unit.String()}
	case This:
		return map[string]any{"type": "This", "interval": EncodeExpression(v.Interval)}
	case Last:
		return map[string]any{"type": "Last", "interval": EncodeExpression(v.Interval)}
	case Next:
		return map[string]any{"type": "Next", "interval": EncodeExpression(v.Interval)}
	case Shift:
		return map[string]any{
			"type":     "Shift",
			"interval": EncodeExpression(v.Interval),
			"period":   map[string]any{"unit": v.Period.Unit.String(), "value": v.Period.Value},
			"direction": v.Direction.String(),
		}
	case Today:
		return map[string]any{"type": "Today"}
	case Yesterday:
		return map[string]any{"type": "Yesterday"}
	case Tomorrow:
		return map[string]any{"type": "Tomorrow"}
	case Now:
		return map[string]any{"type": "Now"}
	case Unknown:
		return map[string]any{"type": "Unknown"}
	}
	return nil
}

// MarshalExpression is EncodeExpression followed by json.Marshal.
func MarshalExpression(e Expression) ([]byte, error) {
	return json.Marshal(EncodeExpression(e))
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
