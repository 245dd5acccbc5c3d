package schema

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// NewSchema starts an empty schema with a fresh id, version "1.0", and both
// timestamps set to now. Version stays author-controlled from here on.
func NewSchema(title string) *FormSchema {
	now := time.Now().UTC()
	return &FormSchema{
		ID:        uuid.NewString(),
		Version:   "1.0",
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt. Callers must invoke it on every save.
func (s *FormSchema) Touch() {
	s.UpdatedAt = time.Now().UTC()
}

// AddSection appends a section and returns a pointer into the schema so the
// caller can keep authoring it.
func (s *FormSchema) AddSection(title string) *FormSection {
	s.Sections = append(s.Sections, FormSection{
		ID:    uuid.NewString(),
		Title: title,
	})
	return &s.Sections[len(s.Sections)-1]
}

// RemoveSection deletes the section with the given id, preserving the order
// of the rest. It reports whether anything was removed.
func (s *FormSchema) RemoveSection(id string) bool {
	for i, section := range s.Sections {
		if section.ID == id {
			s.Sections = append(s.Sections[:i], s.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// AddField appends a field with a fresh id and the default column span. The
// zero field type is text, matching the authoring flow's starting point.
func (sec *FormSection) AddField(name, label string, fieldType FieldType) *FormField {
	if fieldType == "" {
		fieldType = FieldTypeText
	}
	sec.Fields = append(sec.Fields, FormField{
		ID:         uuid.NewString(),
		Type:       fieldType,
		Label:      label,
		Name:       name,
		ColumnSpan: DefaultColumnSpan,
	})
	return &sec.Fields[len(sec.Fields)-1]
}

// RemoveField deletes the field with the given id, preserving order.
func (sec *FormSection) RemoveField(id string) bool {
	for i, field := range sec.Fields {
		if field.ID == id {
			sec.Fields = append(sec.Fields[:i], sec.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// MoveField relocates the field at from to position to, shifting the fields
// between them. Out-of-range indices leave the section untouched.
func (sec *FormSection) MoveField(from, to int) {
	if from < 0 || from >= len(sec.Fields) || to < 0 || to >= len(sec.Fields) || from == to {
		return
	}
	field := sec.Fields[from]
	rest := append(sec.Fields[:from], sec.Fields[from+1:]...)
	sec.Fields = append(rest[:to], append([]FormField{field}, rest[to:]...)...)
}

// AddOption derives the stored value from the label and appends the option.
// This is the only place option values are derived; renderers treat Value as
// opaque from here on.
func (f *FormField) AddOption(label string) {
	f.Options = append(f.Options, OptionFromLabel(label))
}

// OptionFromLabel slugifies a label into its stored value: lowercased, runs
// of whitespace collapsed to single underscores.
func OptionFromLabel(label string) FieldOption {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.TrimSpace(label) {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte('_')
			inSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return FieldOption{Label: label, Value: b.String()}
}
