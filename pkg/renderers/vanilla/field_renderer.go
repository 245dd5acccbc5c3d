package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// FieldRenderer maps one field definition plus its current value and error
// state to wrapped control markup. It satisfies render.FieldRenderer.
type FieldRenderer struct {
	registry *ComponentRegistry
}

// NewFieldRenderer builds a field renderer over the given component
// registry, falling back to the defaults when nil.
func NewFieldRenderer(registry *ComponentRegistry) *FieldRenderer {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &FieldRenderer{registry: registry}
}

// RenderField produces the field wrapper, label, control, and inline error
// markup for one field. Unknown field types produce an empty string and no
// error: the silent-skip policy. The wrapper exposes the clamped column
// span as data for the layout collaborator; no grid math happens here.
func (r *FieldRenderer) RenderField(field schema.FormField, value schema.Value, errorMessage string) (string, error) {
	component, ok := r.registry.Component(field.Type)
	if !ok {
		return "", nil
	}

	resolved := value
	if resolved.IsAbsent() && !field.DefaultValue.IsAbsent() {
		resolved = field.DefaultValue
	}

	var control bytes.Buffer
	if err := component(&control, field, resolved); err != nil {
		return "", fmt.Errorf("vanilla: render %s field %q: %w", field.Type, field.Name, err)
	}

	var builder strings.Builder
	builder.Grow(control.Len() + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString(`" data-field-id="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" data-column-span="`)
	builder.WriteString(strconv.Itoa(field.Span()))
	builder.WriteString(`"`)
	if errorMessage != "" {
		builder.WriteString(` data-invalid="true"`)
	}
	builder.WriteString(">\n")

	if field.Type != schema.FieldTypeToggle && strings.TrimSpace(field.Label) != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(controlID(field)))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(field.Label))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	indentInto(&builder, control.String())

	if errorMessage != "" {
		builder.WriteString(`    <p class="`)
		builder.WriteString(string(ClassError))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(errorMessage))
		builder.WriteString("</p>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String(), nil
}
