package schema

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the closed variant stored in submission records.
type ValueKind int

const (
	// KindAbsent is the zero Value: no answer recorded for the key.
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindStrings
)

// Value is the closed variant a record maps field names to: string, number,
// boolean, or string slice. The zero Value means "absent". Field renderers
// own which kind a field type produces; the validation engine only inspects
// kinds, never coerces between them.
type Value struct {
	kind    ValueKind
	str     string
	num     float64
	boolean bool
	list    []string
}

// String wraps a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Strings wraps an ordered string slice. A nil slice is normalised to an
// empty (present) slice so checkbox groups never hold a scalar.
func Strings(values ...string) Value {
	out := make([]string, len(values))
	copy(out, values)
	return Value{kind: KindStrings, list: out}
}

// Kind reports the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsAbsent reports whether no answer was recorded.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsEmpty reports whether the value fails a required check: absent, an empty
// string, or a zero-length slice. Booleans and numbers are never empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.str == ""
	case KindStrings:
		return len(v.list) == 0
	default:
		return false
	}
}

// AsString returns the string payload when the kind matches.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric payload when the kind matches.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean payload when the kind matches.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsStrings returns a copy of the slice payload when the kind matches.
func (v Value) AsStrings() ([]string, bool) {
	if v.kind != KindStrings {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

// Text renders the value for single-line display. Slices join with ", ".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindStrings:
		text := ""
		for i, item := range v.list {
			if i > 0 {
				text += ", "
			}
			text += item
		}
		return text
	default:
		return ""
	}
}

// Contains reports whether a slice value holds the given option value.
func (v Value) Contains(option string) bool {
	if v.kind != KindStrings {
		return false
	}
	for _, item := range v.list {
		if item == option {
			return true
		}
	}
	return false
}

// ToggleOption returns the value with the given option appended (on) or
// removed (off). Appends go to the end; removal preserves the order and
// presence of every other selected value. Non-slice values are treated as an
// empty selection, which keeps checkbox state well-formed even when a record
// arrives with a scalar under a checkbox key.
func (v Value) ToggleOption(option string, on bool) Value {
	current, ok := v.AsStrings()
	if !ok {
		current = nil
	}
	if on {
		for _, item := range current {
			if item == option {
				return Strings(current...)
			}
		}
		return Strings(append(current, option)...)
	}
	out := current[:0]
	for _, item := range current {
		if item != option {
			out = append(out, item)
		}
	}
	return Strings(out...)
}

// MarshalJSON emits the underlying payload. Absent values marshal as null;
// records usually omit absent keys entirely.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.boolean)
	case KindStrings:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON sniffs the payload into the matching variant. Arrays must be
// arrays of strings; anything else is rejected so stored records stay within
// the closed variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch typed := probe.(type) {
	case nil:
		*v = Value{}
	case string:
		*v = String(typed)
	case float64:
		*v = Number(typed)
	case bool:
		*v = Bool(typed)
	case []any:
		items := make([]string, 0, len(typed))
		for _, raw := range typed {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("schema: value array holds %T, want string", raw)
			}
			items = append(items, s)
		}
		*v = Strings(items...)
	default:
		return fmt.Errorf("schema: unsupported value payload %T", probe)
	}
	return nil
}

// Record maps field names to answers.
type Record map[string]Value

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for name, value := range r {
		out[name] = value
	}
	return out
}

// Get resolves a key, returning the zero (absent) Value when missing.
func (r Record) Get(name string) Value {
	if r == nil {
		return Value{}
	}
	return r[name]
}
