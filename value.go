package xlbridge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the variants of a Value. The zero Kind marks a
// Value that was never populated.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindDateTime
	KindText
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindDateTime:
		return "DateTime"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Value is a typed cell value. Exactly one variant, selected by Kind,
// is populated.
type Value struct {
	Kind   Kind
	Number float64
	Time   time.Time
	Text   string
}

// NumberValue creates a numeric Value.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// DateTimeValue creates a timestamp Value.
func DateTimeValue(t time.Time) Value {
	return Value{Kind: KindDateTime, Time: t}
}

// TextValue creates a textual Value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Any returns the populated variant as a plain Go value.
func (v Value) Any() any {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindDateTime:
		return v.Time
	default:
		return v.Text
	}
}

// subSecondRoundUp is the fractional-second threshold above which an
// outgoing timestamp is rounded up to the next whole second. The xlsx
// day-fraction encoding truncates seconds just below a whole-second
// boundary, which displays as one second too early.
const subSecondRoundUp = 995 * time.Millisecond

// ClassifyOutput classifies an already-stringified computed value for
// writing to a cell. Classification is total: numeric first, then
// timestamp, then the original string verbatim.
func ClassifyOutput(s string) Value {
	if f, ok := parseNumber(s); ok {
		return NumberValue(f)
	}
	if t, ok := ParseTimestamp(s); ok {
		if time.Duration(t.Nanosecond()) >= subSecondRoundUp {
			t = t.Truncate(time.Second).Add(time.Second)
		}
		return DateTimeValue(t)
	}
	return TextValue(s)
}

// parseNumber parses a culture-invariant real number. The textual forms
// "NaN" and "Inf" are not numbers for spreadsheet purposes.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseNumberOrBool additionally accepts the literal tokens "True" and
// "False", mapping them to 1 and 0.
func parseNumberOrBool(s string) (float64, bool) {
	if f, ok := parseNumber(s); ok {
		return f, true
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	return 0, false
}

// timestampLayouts are the culture-invariant date/time forms accepted by
// ParseTimestamp, tried in order. Fractional seconds are optional where
// a layout carries them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05.999999999",
	"01/02/2006 3:04:05 PM",
	"01/02/2006 15:04",
	"01/02/2006",
	"15:04:05.999999999",
}

// ParseTimestamp parses a date/time string against the fixed layout list.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatOutput renders a computed value in the culture-invariant textual
// form the write path classifies. Booleans use the same True/False tokens
// the read path accepts.
func FormatOutput(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format("2006-01-02 15:04:05.999999999")
	default:
		return fmt.Sprintf("%v", x)
	}
}
