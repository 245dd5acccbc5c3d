package vanilla

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

func TestRendererMetadata(t *testing.T) {
	r := New()
	if r.Name() != "vanilla" {
		t.Fatalf("name = %q", r.Name())
	}
	if r.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", r.ContentType())
	}
}

func TestRenderWholeForm(t *testing.T) {
	out, err := New().Render(testsupport.Context(), testsupport.SampleSchema(), render.RenderOptions{
		Values: schema.Record{
			"name": schema.String("Ada"),
			"days": schema.Strings("saturday"),
		},
		Errors:      map[string]string{"email": "Email is required"},
		DraftLabel:  "Save draft",
		SubmitLabel: "Register",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	for _, fragment := range []string{
		`<form class="formflow-form" data-form-id="form-1">`,
		`<input type="hidden" name="_form_id" value="form-1">`,
		`<input type="hidden" name="_form_version" value="1.0">`,
		`<h1>Event registration</h1>`,
		`data-section-id="sec-identity"`,
		`data-section-id="sec-event"`,
		`data-columns="4"`,
		`value="Ada"`,
		`Email is required`,
		`value="saturday" checked`,
		`<button type="reset">Clear</button>`,
		`<button type="button" name="_save_draft">Save draft</button>`,
		`<button type="submit">Register</button>`,
	} {
		if !strings.Contains(markup, fragment) {
			t.Fatalf("missing %q in:\n%s", fragment, markup)
		}
	}

	// Hidden fields render sorted by name: _form_id before _form_version.
	if strings.Index(markup, "_form_id") > strings.Index(markup, "_form_version") {
		t.Fatal("hidden fields not in sorted order")
	}
}

func TestRenderSkipsUnknownFieldTypes(t *testing.T) {
	form := testsupport.SampleSchema()
	form.Sections[0].Fields = append(form.Sections[0].Fields, schema.FormField{
		ID: "fld-legacy", Name: "legacy", Label: "Legacy", Type: "signature",
	})

	out, err := New().Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "fld-legacy") {
		t.Fatal("unknown field type leaked into the markup")
	}
}

func TestRenderSanitizesDescriptions(t *testing.T) {
	form := testsupport.SampleSchema()
	form.Description = `Hello <em>there</em><script>alert(1)</script>`

	out, err := New().Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)
	if strings.Contains(markup, "<script>") {
		t.Fatal("script survived sanitizing")
	}
	if !strings.Contains(markup, "<em>there</em>") {
		t.Fatal("benign markup must survive sanitizing")
	}
}

func TestRenderOmitsDraftButtonWithoutLabel(t *testing.T) {
	out, err := New().Render(testsupport.Context(), testsupport.SampleSchema(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)
	if strings.Contains(markup, "_save_draft") {
		t.Fatal("draft button must be opt-in")
	}
	if !strings.Contains(markup, `<button type="submit">Submit</button>`) {
		t.Fatal("submit label must default to Submit")
	}
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, testsupport.SampleSchema(), render.RenderOptions{}); err == nil {
		t.Fatal("cancelled context must error")
	}
}

func TestRendererCustomComponentRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	err := registry.Register("signature", func(buf *bytes.Buffer, field schema.FormField, value schema.Value) error {
		buf.WriteString(`<canvas data-signature="` + field.Name + `"></canvas>` + "\n")
		return nil
	})
	if err != nil {
		t.Fatalf("register component: %v", err)
	}

	form := testsupport.SampleSchema()
	form.Sections[0].Fields = append(form.Sections[0].Fields, schema.FormField{
		ID: "fld-sig", Name: "sig", Label: "Signature", Type: "signature",
	})

	out, err := New(WithComponentRegistry(registry)).Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-signature="sig"`) {
		t.Fatal("custom component did not render")
	}
}
