package mcpserver

// ExpressionFormatContract documents the JSON encoding of parsed
// expression trees for LLM consumers of the parse_date tool.
const ExpressionFormatContract = `# Expression Tree Format

parse_date returns a JSON object. The "expression" field holds a tagged
tree; every node carries a "type" discriminator.

## Leaf nodes

` + "```" + `json
{"type": "Year", "digits": 2023}
{"type": "Month", "year": 2023, "month": 10}
{"type": "Day", "year": null, "month": 10, "day": 7}
{"type": "Hour", "year": 2023, "month": 10, "day": 7, "hour": 15}
{"type": "Minute", "year": null, "month": null, "day": null, "hour": 15, "minute": 30}
{"type": "Second", "year": null, "month": null, "day": null, "hour": 15, "minute": 30, "second": 45}
{"type": "DayOfWeek", "day": "Monday"}
{"type": "MonthOfYear", "month": "October"}
{"type": "Repeating", "unit": "week"}
{"type": "Today"} {"type": "Yesterday"} {"type": "Tomorrow"} {"type": "Now"}
{"type": "Unknown"}
` + "```" + `

A null date field means the input did not state it. Trees with null
fields are valid but cannot be resolved to an interval, so the result's
"resolved" flag is false and "interval" is absent.

## Wrapper nodes

` + "```" + `json
{"type": "This", "interval": {"type": "Repeating", "unit": "week"}}
{"type": "Next", "interval": {"type": "DayOfWeek", "day": "Monday"}}
{"type": "Last", "interval": {"type": "MonthOfYear", "month": "December"}}
{"type": "Shift",
 "interval": {"type": "Today"},
 "period": {"unit": "day", "value": 3},
 "direction": "before"}
` + "```" + `

## Rules

1. "This", "Next", and "Last" select an occurrence of a recurring inner
   node relative to the anchor. Weeks start on Monday.
2. "Next" and "Last" are strict: a weekday equal to the anchor's weekday
   resolves to the following (respectively previous) week.
3. "Shift" moves the inner node's interval by the period in the given
   direction; "before" means into the past.
4. Month arithmetic clamps the day to the target month's length
   (Jan 31 shifted by one month gives the last day of February).
5. The result's "period" field names the tree's granularity: one of
   "year", "month", "day", "hour", "minute", "second", "week", "today",
   "yesterday", "tomorrow", "now", or "unknown".
`
