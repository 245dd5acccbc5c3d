// Package vanilla renders form schemas into dependency-free HTML: semantic
// markup, chrome classes for styling hooks, and data attributes carrying the
// layout hints. It performs no grid math; hosts lay fields out from the
// data-column-span attribute.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithComponentRegistry overrides the component registry used for controls.
func WithComponentRegistry(registry *ComponentRegistry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.fields = NewFieldRenderer(registry)
		}
	}
}

// Renderer implements render.Renderer for static HTML output.
type Renderer struct {
	fields *FieldRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{fields: NewFieldRenderer(nil)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// FieldRenderer exposes the per-field renderer for hosts that drive layout
// themselves.
func (r *Renderer) FieldRenderer() *FieldRenderer {
	return r.fields
}

// Render emits the whole form: header, hidden provenance fields, one grid
// block per section, and the action row. Values and errors come from the
// render options keyed by field name.
func (r *Renderer) Render(ctx context.Context, form schema.FormSchema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("vanilla: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder

	b.WriteString(`<form class="`)
	b.WriteString(string(ClassForm))
	b.WriteString(`" data-form-id="`)
	b.WriteString(html.EscapeString(form.ID))
	b.WriteString(`">` + "\n")

	hidden := render.MergeHiddenFields(opts.Hidden,
		render.FormIDField(form.ID),
		render.VersionField(form.Version),
	)
	for _, field := range render.SortedHiddenFields(hidden) {
		b.WriteString(`  <input type="hidden" name="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(field.Value))
		b.WriteString(`">` + "\n")
	}

	b.WriteString(`  <header class="`)
	b.WriteString(string(ClassHeader))
	b.WriteString(`">` + "\n")
	b.WriteString("    <h1>")
	b.WriteString(html.EscapeString(form.Title))
	b.WriteString("</h1>\n")
	if desc := sanitizeDescription(form.Description); desc != "" {
		b.WriteString("    <p>")
		b.WriteString(desc)
		b.WriteString("</p>\n")
	}
	b.WriteString("  </header>\n")

	for _, section := range form.Sections {
		if err := r.renderSection(&b, section, opts); err != nil {
			return nil, err
		}
	}

	r.renderActions(&b, opts)

	b.WriteString("</form>\n")
	return []byte(b.String()), nil
}

func (r *Renderer) renderSection(b *strings.Builder, section schema.FormSection, opts render.RenderOptions) error {
	b.WriteString(`  <section class="`)
	b.WriteString(string(ClassSection))
	b.WriteString(`" data-section-id="`)
	b.WriteString(html.EscapeString(section.ID))
	b.WriteString(`">` + "\n")
	b.WriteString("    <h2>")
	b.WriteString(html.EscapeString(section.Title))
	b.WriteString("</h2>\n")
	if desc := sanitizeDescription(section.Description); desc != "" {
		b.WriteString("    <p>")
		b.WriteString(desc)
		b.WriteString("</p>\n")
	}

	b.WriteString(`    <div class="`)
	b.WriteString(string(ClassGrid))
	b.WriteString(`" data-columns="4">` + "\n")
	for _, field := range section.Fields {
		markup, err := r.fields.RenderField(field, opts.Values.Get(field.Name), opts.Errors[field.Name])
		if err != nil {
			return fmt.Errorf("vanilla: section %q: %w", section.ID, err)
		}
		if markup == "" {
			continue
		}
		b.WriteString(markup)
	}
	b.WriteString("    </div>\n")
	b.WriteString("  </section>\n")
	return nil
}

func (r *Renderer) renderActions(b *strings.Builder, opts render.RenderOptions) {
	submitLabel := opts.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	draftLabel := opts.DraftLabel

	b.WriteString(`  <footer class="`)
	b.WriteString(string(ClassActions))
	b.WriteString(`">` + "\n")
	b.WriteString(`    <button type="reset">Clear</button>` + "\n")
	if draftLabel != "" {
		b.WriteString(`    <button type="button" name="_save_draft">`)
		b.WriteString(html.EscapeString(draftLabel))
		b.WriteString("</button>\n")
	}
	b.WriteString(`    <button type="submit">`)
	b.WriteString(html.EscapeString(submitLabel))
	b.WriteString("</button>\n")
	b.WriteString("  </footer>\n")
}
