package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// ComponentFunc writes the control markup for one field. The current value
// arrives as the closed record variant; components own how each field type
// interprets it.
type ComponentFunc func(buf *bytes.Buffer, field schema.FormField, value schema.Value) error

// ComponentRegistry maps field types to control renderers. Callers can
// register replacements; a field type without a component renders nothing.
type ComponentRegistry struct {
	mu         sync.RWMutex
	components map[schema.FieldType]ComponentFunc
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		components: make(map[schema.FieldType]ComponentFunc),
	}
}

// Register associates a component with a field type, replacing any existing
// entry.
func (r *ComponentRegistry) Register(fieldType schema.FieldType, fn ComponentFunc) error {
	if fieldType == "" {
		return fmt.Errorf("vanilla: field type is required")
	}
	if fn == nil {
		return fmt.Errorf("vanilla: component for %q is nil", fieldType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[fieldType] = fn
	return nil
}

// Component returns the registered renderer for a field type.
func (r *ComponentRegistry) Component(fieldType schema.FieldType) (ComponentFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.components[fieldType]
	return fn, ok
}

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components for every known field type.
func NewDefaultRegistry() *ComponentRegistry {
	registry := NewComponentRegistry()
	_ = registry.Register(schema.FieldTypeText, inputComponent("text"))
	_ = registry.Register(schema.FieldTypeEmail, inputComponent("email"))
	_ = registry.Register(schema.FieldTypePassword, inputComponent("password"))
	_ = registry.Register(schema.FieldTypeTextarea, textareaComponent)
	_ = registry.Register(schema.FieldTypeDate, dateComponent("date"))
	_ = registry.Register(schema.FieldTypeDatetime, dateComponent("datetime-local"))
	_ = registry.Register(schema.FieldTypeDropdown, dropdownComponent)
	_ = registry.Register(schema.FieldTypeRadio, choiceGroupComponent("radio"))
	_ = registry.Register(schema.FieldTypeCheckbox, choiceGroupComponent("checkbox"))
	_ = registry.Register(schema.FieldTypeToggle, toggleComponent)
	return registry
}

func controlID(field schema.FormField) string {
	return "ff-" + field.Name
}

func inputComponent(inputType string) ComponentFunc {
	return func(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
		text, _ := value.AsString()
		buf.WriteString(`<input type="`)
		buf.WriteString(inputType)
		buf.WriteString(`" id="`)
		buf.WriteString(html.EscapeString(controlID(field)))
		buf.WriteString(`" name="`)
		buf.WriteString(html.EscapeString(field.Name))
		buf.WriteString(`" value="`)
		buf.WriteString(html.EscapeString(text))
		buf.WriteString(`"`)
		if field.Placeholder != "" {
			buf.WriteString(` placeholder="`)
			buf.WriteString(html.EscapeString(field.Placeholder))
			buf.WriteString(`"`)
		}
		if field.Required {
			buf.WriteString(` required`)
		}
		buf.WriteString(">\n")
		return nil
	}
}

func textareaComponent(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
	text, _ := value.AsString()
	buf.WriteString(`<textarea id="`)
	buf.WriteString(html.EscapeString(controlID(field)))
	buf.WriteString(`" name="`)
	buf.WriteString(html.EscapeString(field.Name))
	buf.WriteString(`" rows="4"`)
	if field.Placeholder != "" {
		buf.WriteString(` placeholder="`)
		buf.WriteString(html.EscapeString(field.Placeholder))
		buf.WriteString(`"`)
	}
	if field.Required {
		buf.WriteString(` required`)
	}
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(text))
	buf.WriteString("</textarea>\n")
	return nil
}

// dateComponent narrows the stored ISO-8601 string to the precision the
// browser control accepts; the stored representation stays the full string.
func dateComponent(inputType string) ComponentFunc {
	return func(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
		text, _ := value.AsString()
		buf.WriteString(`<input type="`)
		buf.WriteString(inputType)
		buf.WriteString(`" id="`)
		buf.WriteString(html.EscapeString(controlID(field)))
		buf.WriteString(`" name="`)
		buf.WriteString(html.EscapeString(field.Name))
		buf.WriteString(`" value="`)
		buf.WriteString(html.EscapeString(controlDateValue(text, inputType)))
		buf.WriteString(`"`)
		if field.Required {
			buf.WriteString(` required`)
		}
		buf.WriteString(">\n")
		return nil
	}
}

func controlDateValue(iso, inputType string) string {
	if iso == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	if inputType == "date" {
		return parsed.Format("2006-01-02")
	}
	return parsed.Format("2006-01-02T15:04")
}

func dropdownComponent(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
	selected, _ := value.AsString()
	buf.WriteString(`<select id="`)
	buf.WriteString(html.EscapeString(controlID(field)))
	buf.WriteString(`" name="`)
	buf.WriteString(html.EscapeString(field.Name))
	buf.WriteString(`"`)
	if field.Required {
		buf.WriteString(` required`)
	}
	buf.WriteString(">\n")
	buf.WriteString(`  <option value=""></option>` + "\n")
	for _, option := range field.Options {
		buf.WriteString(`  <option value="`)
		buf.WriteString(html.EscapeString(option.Value))
		buf.WriteString(`"`)
		if option.Value == selected {
			buf.WriteString(` selected`)
		}
		buf.WriteString(">")
		buf.WriteString(html.EscapeString(option.Label))
		buf.WriteString("</option>\n")
	}
	buf.WriteString("</select>\n")
	return nil
}

// choiceGroupComponent renders one control per option. Radio groups read a
// single opaque value; checkbox groups read the string-slice value and mark
// each contained option.
func choiceGroupComponent(inputType string) ComponentFunc {
	return func(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
		selected, _ := value.AsString()
		buf.WriteString(`<fieldset name="`)
		buf.WriteString(html.EscapeString(field.Name))
		buf.WriteString(`">` + "\n")
		for _, option := range field.Options {
			checked := false
			if inputType == "checkbox" {
				checked = value.Contains(option.Value)
			} else {
				checked = selected != "" && option.Value == selected
			}
			buf.WriteString(`  <label><input type="`)
			buf.WriteString(inputType)
			buf.WriteString(`" name="`)
			buf.WriteString(html.EscapeString(field.Name))
			buf.WriteString(`" value="`)
			buf.WriteString(html.EscapeString(option.Value))
			buf.WriteString(`"`)
			if checked {
				buf.WriteString(` checked`)
			}
			buf.WriteString("> ")
			buf.WriteString(html.EscapeString(option.Label))
			buf.WriteString("</label>\n")
		}
		buf.WriteString("</fieldset>\n")
		return nil
	}
}

// toggleComponent always renders a concrete checked or unchecked switch; an
// absent value was already seeded to false by the session controller, but
// the control degrades to unchecked regardless.
func toggleComponent(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
	on, _ := value.AsBool()
	buf.WriteString(`<label><input type="checkbox" role="switch" id="`)
	buf.WriteString(html.EscapeString(controlID(field)))
	buf.WriteString(`" name="`)
	buf.WriteString(html.EscapeString(field.Name))
	buf.WriteString(`" value="true"`)
	if on {
		buf.WriteString(` checked`)
	}
	buf.WriteString("> ")
	buf.WriteString(html.EscapeString(field.Label))
	buf.WriteString("</label>\n")
	return nil
}

func indentInto(builder *strings.Builder, control string) {
	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
}
