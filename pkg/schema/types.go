package schema

import "time"

// FieldType enumerates the input kinds the renderer understands.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeToggle   FieldType = "toggle"
)

// KnownFieldTypes lists every supported field type in authoring order.
var KnownFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypePassword,
	FieldTypeTextarea,
	FieldTypeDate,
	FieldTypeDatetime,
	FieldTypeDropdown,
	FieldTypeCheckbox,
	FieldTypeRadio,
	FieldTypeToggle,
}

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	for _, known := range KnownFieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NeedsOptions reports whether the type renders from an option list.
func (t FieldType) NeedsOptions() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeCheckbox, FieldTypeRadio:
		return true
	default:
		return false
	}
}

// FieldOption pairs a display label with an opaque stored value. Renderers
// must never re-derive Value from Label; OptionFromLabel is the only place
// that relationship exists.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ValidationRule carries the optional per-field constraints. Only MinLength
// and MaxLength are enforced by the validation engine today; Pattern, Min,
// Max, and Custom round-trip through JSON untouched.
type ValidationRule struct {
	Required  bool    `json:"required,omitempty"`
	MinLength int     `json:"minLength,omitempty"`
	MaxLength int     `json:"maxLength,omitempty"`
	Pattern   string  `json:"pattern,omitempty"`
	Min       float64 `json:"min,omitempty"`
	Max       float64 `json:"max,omitempty"`
	Custom    string  `json:"custom,omitempty"`
}

// Dependency is reserved for conditional visibility. No evaluator exists;
// the field is carried so authored schemas survive round-trips.
type Dependency struct {
	FieldID   string `json:"fieldId"`
	Condition string `json:"condition"`
	Value     any    `json:"value,omitempty"`
}

const (
	// DefaultColumnSpan is applied when a field declares no span.
	DefaultColumnSpan = 2
	// MaxColumnSpan is the width of the row grid.
	MaxColumnSpan = 4
)

// FormField is one input definition inside a section. Name is the data key
// joining the field to submission records; ID identifies the field within
// the authoring flow.
type FormField struct {
	ID           string          `json:"id"`
	Type         FieldType       `json:"type"`
	Label        string          `json:"label"`
	Name         string          `json:"name"`
	Placeholder  string          `json:"placeholder,omitempty"`
	Required     bool            `json:"required,omitempty"`
	DefaultValue Value           `json:"defaultValue,omitempty"`
	Validation   *ValidationRule `json:"validation,omitempty"`
	Options      []FieldOption   `json:"options,omitempty"`
	ColumnSpan   int             `json:"columnSpan,omitempty"`
	DependsOn    *Dependency     `json:"dependsOn,omitempty"`
}

// Span returns the column span clamped to the 1-4 grid, defaulting to 2.
func (f FormField) Span() int {
	if f.ColumnSpan == 0 {
		return DefaultColumnSpan
	}
	if f.ColumnSpan < 1 {
		return 1
	}
	if f.ColumnSpan > MaxColumnSpan {
		return MaxColumnSpan
	}
	return f.ColumnSpan
}

// MinLength reports the enforced minimum length, zero when unset.
func (f FormField) MinLength() int {
	if f.Validation == nil {
		return 0
	}
	return f.Validation.MinLength
}

// MaxLength reports the enforced maximum length, zero when unset.
func (f FormField) MaxLength() int {
	if f.Validation == nil {
		return 0
	}
	return f.Validation.MaxLength
}

// FormSection groups an ordered run of fields. Field order is render order
// and must survive every mutation.
type FormSection struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
}

// FormSchema is the declarative description of a form. ID is stable across
// edits; Version is author-controlled metadata and never auto-incremented.
type FormSchema struct {
	ID          string        `json:"id"`
	Version     string        `json:"version"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Sections    []FormSection `json:"sections"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Fields yields every field across all sections in schema order.
func (s FormSchema) Fields() []FormField {
	var out []FormField
	for _, section := range s.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// FieldByName returns the last field declaring the given data key. When a
// schema violates name uniqueness the later field wins, matching how records
// resolve the key.
func (s FormSchema) FieldByName(name string) (FormField, bool) {
	var (
		found FormField
		ok    bool
	)
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				found = field
				ok = true
			}
		}
	}
	return found, ok
}

// SubmissionStatus distinguishes drafts from finalized submissions.
type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "draft"
	StatusSubmitted SubmissionStatus = "submitted"
)

// FormSubmission is a data record captured against a schema version. The
// version string is traceability metadata only; it is never reconciled
// against the current schema.
type FormSubmission struct {
	ID          string           `json:"id"`
	FormID      string           `json:"formId"`
	FormVersion string           `json:"formVersion"`
	Data        Record           `json:"data"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Status      SubmissionStatus `json:"status"`
}
