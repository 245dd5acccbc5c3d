// Package testsupport holds deterministic fixtures shared by the package
// tests. Everything here uses fixed ids and timestamps so assertions can
// compare whole structures.
package testsupport

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// FixedTime is the timestamp stamped on fixture schemas and submissions.
var FixedTime = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

// SampleSchema returns a two-section schema exercising every field type the
// renderer supports.
func SampleSchema() schema.FormSchema {
	return schema.FormSchema{
		ID:          "form-1",
		Version:     "1.0",
		Title:       "Event registration",
		Description: "Tell us who is coming",
		CreatedAt:   FixedTime,
		UpdatedAt:   FixedTime,
		Sections: []schema.FormSection{
			{
				ID:    "sec-identity",
				Title: "Identity",
				Fields: []schema.FormField{
					{ID: "fld-name", Name: "name", Label: "Full name", Type: schema.FieldTypeText, Required: true, Placeholder: "Ada Lovelace"},
					{ID: "fld-email", Name: "email", Label: "Email", Type: schema.FieldTypeEmail, Required: true},
					{ID: "fld-password", Name: "password", Label: "Password", Type: schema.FieldTypePassword,
						Validation: &schema.ValidationRule{MinLength: 8}},
					{ID: "fld-bio", Name: "bio", Label: "Bio", Type: schema.FieldTypeTextarea,
						Validation: &schema.ValidationRule{MaxLength: 200}, ColumnSpan: 4},
				},
			},
			{
				ID:    "sec-event",
				Title: "Event",
				Fields: []schema.FormField{
					{ID: "fld-date", Name: "arrival", Label: "Arrival date", Type: schema.FieldTypeDate},
					{ID: "fld-slot", Name: "slot", Label: "Slot", Type: schema.FieldTypeDatetime},
					{ID: "fld-meal", Name: "meal", Label: "Meal", Type: schema.FieldTypeDropdown, Options: []schema.FieldOption{
						{Label: "Vegetarian", Value: "vegetarian"},
						{Label: "Meat", Value: "meat"},
					}},
					{ID: "fld-days", Name: "days", Label: "Days attending", Type: schema.FieldTypeCheckbox, Options: []schema.FieldOption{
						{Label: "Saturday", Value: "saturday"},
						{Label: "Sunday", Value: "sunday"},
					}},
					{ID: "fld-size", Name: "shirt", Label: "Shirt size", Type: schema.FieldTypeRadio, Options: []schema.FieldOption{
						{Label: "Small", Value: "small"},
						{Label: "Large", Value: "large"},
					}},
					{ID: "fld-news", Name: "newsletter", Label: "Newsletter", Type: schema.FieldTypeToggle,
						DefaultValue: schema.Bool(true)},
				},
			},
		},
	}
}

// SampleSubmission returns a submitted record for the sample schema.
func SampleSubmission(id string) schema.FormSubmission {
	return schema.FormSubmission{
		ID:          id,
		FormID:      "form-1",
		FormVersion: "1.0",
		Data: schema.Record{
			"name":       schema.String("Ada"),
			"email":      schema.String("ada@example.com"),
			"days":       schema.Strings("saturday"),
			"newsletter": schema.Bool(true),
		},
		SubmittedAt: FixedTime,
		Status:      schema.StatusSubmitted,
	}
}

// LoadSchema reads and parses a schema fixture from testdata.
func LoadSchema(t *testing.T, path string) schema.FormSchema {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	form, err := schema.ParseSchema(data)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return form
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
