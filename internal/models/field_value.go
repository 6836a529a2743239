package models

import "time"

// ValueKind tells which of FieldValue's members carries the value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueRaw
	ValueQuoted
	ValueTimestamp
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueRaw:
		return "raw"
	case ValueQuoted:
		return "quoted"
	case ValueTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// FieldValue is the value of one LogRecord field: absent, a raw token, the interior of
// a quoted string, or a parsed timestamp.
type FieldValue struct {
	Kind ValueKind
	Text string
	Time time.Time
}

func NullValue() FieldValue { return FieldValue{Kind: ValueNull} }

func RawValue(text string) FieldValue { return FieldValue{Kind: ValueRaw, Text: text} }

func QuotedValue(text string) FieldValue { return FieldValue{Kind: ValueQuoted, Text: text} }

func TimestampValue(t time.Time) FieldValue { return FieldValue{Kind: ValueTimestamp, Time: t} }

func (v FieldValue) IsNull() bool {
	return v.Kind == ValueNull
}

// AsString returns the textual value of raw and quoted fields.
// ok is false for null and timestamp fields.
func (v FieldValue) AsString() (s string, ok bool) {
	switch v.Kind {
	case ValueRaw, ValueQuoted:
		return v.Text, true
	default:
		return "", false
	}
}
