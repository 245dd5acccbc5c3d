package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formflow/pkg/schema"
)

const sampleDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Signup API", "version": "1.0.0"},
  "paths": {
    "/signups": {
      "post": {
        "operationId": "createSignup",
        "summary": "Create signup",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "name"],
                "properties": {
                  "email": {"type": "string", "format": "email", "description": "Work email"},
                  "name": {"type": "string", "minLength": 2, "maxLength": 60},
                  "bio": {"type": "string", "format": "textarea"},
                  "newsletter": {"type": "boolean", "default": true},
                  "plan": {"type": "string", "enum": ["free", "pro"]},
                  "interests": {
                    "type": "array",
                    "items": {"type": "string", "enum": ["go", "rust"]}
                  },
                  "address": {
                    "type": "object",
                    "required": ["city"],
                    "properties": {
                      "city": {"type": "string"},
                      "zip": {"type": "string"}
                    }
                  },
                  "attachments": {
                    "type": "array",
                    "items": {"type": "object"}
                  }
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func importSample(t *testing.T) schema.FormSchema {
	t.Helper()
	form, err := New(Options{}).Import(context.Background(), []byte(sampleDoc), "createSignup")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return form
}

func TestImportBuildsSections(t *testing.T) {
	form := importSample(t)

	if form.Title != "Create signup" {
		t.Fatalf("title = %q, want summary", form.Title)
	}
	if len(form.Sections) != 2 {
		t.Fatalf("sections = %d, want main + address", len(form.Sections))
	}
	if form.Sections[0].Title != "Details" {
		t.Fatalf("first section = %q, want Details", form.Sections[0].Title)
	}
	if form.Sections[1].Title != "Address" {
		t.Fatalf("second section = %q, want Address", form.Sections[1].Title)
	}
}

func TestImportFieldMapping(t *testing.T) {
	form := importSample(t)

	cases := []struct {
		name     string
		wantType schema.FieldType
	}{
		{"email", schema.FieldTypeEmail},
		{"name", schema.FieldTypeText},
		{"bio", schema.FieldTypeTextarea},
		{"newsletter", schema.FieldTypeToggle},
		{"plan", schema.FieldTypeDropdown},
		{"interests", schema.FieldTypeCheckbox},
		{"address.city", schema.FieldTypeText},
	}
	for _, tc := range cases {
		field, ok := form.FieldByName(tc.name)
		if !ok {
			t.Fatalf("field %q missing", tc.name)
		}
		if field.Type != tc.wantType {
			t.Fatalf("field %q type = %q, want %q", tc.name, field.Type, tc.wantType)
		}
	}

	if _, ok := form.FieldByName("attachments"); ok {
		t.Fatal("array-of-object property should be skipped")
	}
}

func TestImportRequiredAndLengths(t *testing.T) {
	form := importSample(t)

	email, _ := form.FieldByName("email")
	if !email.Required {
		t.Fatal("email should be required")
	}
	if email.Placeholder != "Work email" {
		t.Fatalf("email placeholder = %q", email.Placeholder)
	}

	name, _ := form.FieldByName("name")
	if name.MinLength() != 2 || name.MaxLength() != 60 {
		t.Fatalf("name lengths = %d/%d, want 2/60", name.MinLength(), name.MaxLength())
	}

	city, _ := form.FieldByName("address.city")
	if !city.Required {
		t.Fatal("nested required should carry through")
	}
}

func TestImportDefaultsAndOptions(t *testing.T) {
	form := importSample(t)

	newsletter, _ := form.FieldByName("newsletter")
	if on, ok := newsletter.DefaultValue.AsBool(); !ok || !on {
		t.Fatalf("newsletter default = %+v, want true", newsletter.DefaultValue)
	}

	plan, _ := form.FieldByName("plan")
	if len(plan.Options) != 2 || plan.Options[0].Value != "free" || plan.Options[1].Value != "pro" {
		t.Fatalf("plan options = %+v", plan.Options)
	}
	if plan.Options[1].Label != "Pro" {
		t.Fatalf("plan label = %q, want Pro", plan.Options[1].Label)
	}

	// Required properties are prompted first.
	names := make([]string, 0, len(form.Sections[0].Fields))
	for _, field := range form.Sections[0].Fields {
		names = append(names, field.Name)
	}
	if names[0] != "email" || names[1] != "name" {
		t.Fatalf("field order = %v, want required first", names)
	}
}

func TestImportUnknownOperation(t *testing.T) {
	_, err := New(Options{}).Import(context.Background(), []byte(sampleDoc), "nope")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("err = %v, want ErrOperationNotFound", err)
	}
}
