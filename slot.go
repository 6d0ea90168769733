package xlbridge

// SlotKind is the type a destination slot accepts.
type SlotKind int

const (
	SlotNumber SlotKind = iota
	SlotDateTime
	SlotText
)

// String returns a human-readable name for the SlotKind.
func (k SlotKind) String() string {
	switch k {
	case SlotNumber:
		return "numeric"
	case SlotDateTime:
		return "datetime"
	case SlotText:
		return "textual"
	default:
		return "unknown"
	}
}

// Slot is the destination for one read cell: the kind it accepts and the
// Value it fills in place on success.
type Slot struct {
	Kind SlotKind
	Dst  *Value
}

// NumberSlot creates a numeric destination.
func NumberSlot(dst *Value) Slot { return Slot{Kind: SlotNumber, Dst: dst} }

// DateTimeSlot creates a timestamp destination.
func DateTimeSlot(dst *Value) Slot { return Slot{Kind: SlotDateTime, Dst: dst} }

// TextSlot creates a textual destination.
func TextSlot(dst *Value) Slot { return Slot{Kind: SlotText, Dst: dst} }

// ClassifyInput classifies a raw cell string for a destination of the
// given kind.
//
// Numeric destinations take any real number plus the tokens "True" and
// "False" (1 and 0). Datetime destinations take a timestamp, or a bare
// number kept numeric as an hour offset from the simulation epoch.
// Textual destinations take the raw string verbatim, empty included.
func ClassifyInput(raw string, kind SlotKind) (Value, error) {
	switch kind {
	case SlotNumber:
		if f, ok := parseNumberOrBool(raw); ok {
			return NumberValue(f), nil
		}
	case SlotDateTime:
		if t, ok := ParseTimestamp(raw); ok {
			return DateTimeValue(t), nil
		}
		if f, ok := parseNumber(raw); ok {
			return NumberValue(f), nil
		}
	case SlotText:
		return TextValue(raw), nil
	}
	return Value{}, &ClassificationError{Raw: raw, Slot: kind}
}

// CoerceInto classifies raw for the slot and stores the result in place.
func CoerceInto(raw string, slot Slot) error {
	v, err := ClassifyInput(raw, slot.Kind)
	if err != nil {
		return err
	}
	*slot.Dst = v
	return nil
}
