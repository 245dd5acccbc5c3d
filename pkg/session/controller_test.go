package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/schema"
)

func sessionSchema() schema.FormSchema {
	return schema.FormSchema{Sections: []schema.FormSection{
		{
			ID: "sec-1",
			Fields: []schema.FormField{
				{ID: "f1", Name: "email", Label: "Email", Type: schema.FieldTypeEmail, Required: true},
				{ID: "f2", Name: "name", Label: "Name", Type: schema.FieldTypeText, Required: true},
				{ID: "f3", Name: "news", Label: "News", Type: schema.FieldTypeToggle,
					DefaultValue: schema.Bool(true)},
				{ID: "f4", Name: "urgent", Label: "Urgent", Type: schema.FieldTypeToggle},
			},
		},
	}}
}

func TestNewSeedsToggleDefaults(t *testing.T) {
	ctrl := New(sessionSchema())

	want := schema.Record{
		"news":   schema.Bool(true),
		"urgent": schema.Bool(false),
	}
	if diff := cmp.Diff(want, ctrl.Data(), cmp.AllowUnexported(schema.Value{})); diff != "" {
		t.Fatalf("seeded record mismatch (-want +got):\n%s", diff)
	}

	// Initial data wins over the toggle default.
	ctrl = New(sessionSchema(), WithInitialData(schema.Record{
		"news": schema.Bool(false),
	}))
	if on, _ := ctrl.Data().Get("news").AsBool(); on {
		t.Fatal("initial data must not be overwritten by seeding")
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	calls := 0
	var focused string
	ctrl := New(sessionSchema(),
		WithSubmitFunc(func(context.Context, schema.Record) error {
			calls++
			return nil
		}),
		WithFocusFunc(func(name string) { focused = name }),
	)

	if ctrl.Submit(context.Background()) {
		t.Fatal("submit must fail on empty required fields")
	}
	if calls != 0 {
		t.Fatal("callback must not run on validation failure")
	}
	if focused != "email" {
		t.Fatalf("focus = %q, want the first erroring field in schema order", focused)
	}
	if ctrl.Status() != StatusIdle || ctrl.Busy() {
		t.Fatal("controller must return to idle after a failed submit")
	}

	errs := ctrl.Errors()
	if errs["email"] != "Email is required" || errs["name"] != "Name is required" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestChangeFieldClearsErrorOptimistically(t *testing.T) {
	ctrl := New(sessionSchema(), WithSubmitFunc(func(context.Context, schema.Record) error { return nil }))
	ctrl.Submit(context.Background())

	ctrl.ChangeField("email", schema.String("not-an-email"))

	errs := ctrl.Errors()
	if _, ok := errs["email"]; ok {
		t.Fatal("changing a field must clear its error without re-validating")
	}
	if _, ok := errs["name"]; !ok {
		t.Fatal("other errors must stay put")
	}
}

func TestSubmitSuccess(t *testing.T) {
	var got schema.Record
	ctrl := New(sessionSchema(), WithSubmitFunc(func(_ context.Context, data schema.Record) error {
		got = data
		return nil
	}))
	ctrl.ChangeField("email", schema.String("x@y.com"))
	ctrl.ChangeField("name", schema.String("Ada"))

	if !ctrl.Submit(context.Background()) {
		t.Fatalf("submit failed: %v", ctrl.Errors())
	}
	if ctrl.Notice() != "" {
		t.Fatalf("notice = %q, want empty", ctrl.Notice())
	}
	if v, _ := got.Get("email").AsString(); v != "x@y.com" {
		t.Fatalf("callback data email = %q", v)
	}
	if _, ok := got.Get("news").AsBool(); !ok {
		t.Fatal("seeded toggles must reach the callback")
	}
}

func TestSubmitWithoutCallback(t *testing.T) {
	ctrl := New(sessionSchema())
	ctrl.ChangeField("email", schema.String("x@y.com"))
	ctrl.ChangeField("name", schema.String("Ada"))
	if ctrl.Submit(context.Background()) {
		t.Fatal("submit without a callback must report false")
	}
}

func TestSaveDraftBypassesValidation(t *testing.T) {
	var got schema.Record
	ctrl := New(sessionSchema(),
		WithSubmitFunc(func(context.Context, schema.Record) error { return nil }),
		WithDraftFunc(func(_ context.Context, data schema.Record) error {
			got = data
			return nil
		}),
	)
	ctrl.ChangeField("name", schema.String("partial"))

	if !ctrl.SaveDraft(context.Background()) {
		t.Fatal("draft save must run with incomplete data")
	}
	if len(ctrl.Errors()) != 0 {
		t.Fatalf("draft save produced errors: %v", ctrl.Errors())
	}
	if v, _ := got.Get("name").AsString(); v != "partial" {
		t.Fatalf("draft data = %v", got)
	}

	// No draft callback configured means no draft action.
	bare := New(sessionSchema())
	if bare.SaveDraft(context.Background()) {
		t.Fatal("draft save without a callback must report false")
	}
}

func TestCallbackFailureIsNonFatal(t *testing.T) {
	ctrl := New(sessionSchema(), WithSubmitFunc(func(context.Context, schema.Record) error {
		return errors.New("store offline")
	}))
	ctrl.ChangeField("email", schema.String("x@y.com"))
	ctrl.ChangeField("name", schema.String("Ada"))

	if !ctrl.Submit(context.Background()) {
		t.Fatal("validation passed, submit reports true even when the callback errors")
	}
	if ctrl.Notice() == "" {
		t.Fatal("callback failure must surface in the notice")
	}
	if v, _ := ctrl.Data().Get("email").AsString(); v != "x@y.com" {
		t.Fatal("record must survive a callback failure")
	}
	if ctrl.Status() != StatusIdle {
		t.Fatal("controller must settle back to idle")
	}
}

func TestClearResetsToToggleDefaults(t *testing.T) {
	ctrl := New(sessionSchema(), WithInitialData(schema.Record{
		"email": schema.String("x@y.com"),
		"name":  schema.String("Ada"),
	}))
	ctrl.Submit(context.Background())
	ctrl.Clear()

	want := schema.Record{
		"news":   schema.Bool(true),
		"urgent": schema.Bool(false),
	}
	if diff := cmp.Diff(want, ctrl.Data(), cmp.AllowUnexported(schema.Value{})); diff != "" {
		t.Fatalf("cleared record mismatch (-want +got):\n%s", diff)
	}
	if len(ctrl.Errors()) != 0 {
		t.Fatal("clear must drop errors")
	}
}
