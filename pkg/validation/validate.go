// Package validation implements the pure form validation engine: a schema
// plus a record in, a field-name to message mapping out. No side effects, no
// short-circuiting across fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/schema"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps field names to their current error message. An empty mapping
// means the record is valid.
type Errors map[string]string

// Valid reports whether no field holds an error.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// First returns the name of the first erroring field in schema order, so the
// UI can focus it. Empty when the mapping is clean or no erroring name
// appears in the schema.
func (e Errors) First(s schema.FormSchema) string {
	if len(e) == 0 {
		return ""
	}
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if _, ok := e[field.Name]; ok {
				return field.Name
			}
		}
	}
	return ""
}

// Validate applies the engine's fixed rule order per field across every
// section: required, then email format, then min/max length. Rules do not
// chain; the last failing rule's message wins for a field. Toggle fields are
// exempt from all rules because false is a complete answer.
func Validate(s schema.FormSchema, record schema.Record) Errors {
	errs := make(Errors)

	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if field.Type == schema.FieldTypeToggle {
				continue
			}

			value := record.Get(field.Name)

			if field.Required && value.IsEmpty() {
				errs[field.Name] = fmt.Sprintf("%s is required", field.Label)
			}

			text, isString := value.AsString()

			if field.Type == schema.FieldTypeEmail && isString && text != "" {
				if !emailPattern.MatchString(text) {
					errs[field.Name] = "Invalid email format"
				}
			}

			if isString && text != "" {
				length := utf8.RuneCountInString(text)
				if min := field.MinLength(); min > 0 && length < min {
					errs[field.Name] = fmt.Sprintf("Minimum %d characters required", min)
				}
				if max := field.MaxLength(); max > 0 && length > max {
					errs[field.Name] = fmt.Sprintf("Maximum %d characters allowed", max)
				}
			}
		}
	}

	if len(errs) == 0 {
		return Errors{}
	}
	return errs
}
