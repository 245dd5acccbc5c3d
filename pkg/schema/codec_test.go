package schema

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const jsonSchemaDoc = `{
  "id": "form-1",
  "version": "1.0",
  "title": "Contact",
  "sections": [
    {
      "id": "sec-1",
      "title": "Details",
      "fields": [
        {
          "id": "fld-1",
          "type": "email",
          "label": "Email",
          "name": "email",
          "required": true,
          "validation": {"required": true, "minLength": 3}
        },
        {
          "id": "fld-2",
          "type": "checkbox",
          "label": "Colors",
          "name": "colors",
          "defaultValue": ["red"],
          "options": [
            {"label": "Red", "value": "red"},
            {"label": "Blue", "value": "blue"}
          ]
        }
      ]
    }
  ]
}`

const yamlSchemaDoc = `
id: form-1
version: "1.0"
title: Contact
sections:
  - id: sec-1
    title: Details
    fields:
      - id: fld-1
        type: email
        label: Email
        name: email
        required: true
        validation:
          required: true
          minLength: 3
      - id: fld-2
        type: checkbox
        label: Colors
        name: colors
        defaultValue: [red]
        options:
          - {label: Red, value: red}
          - {label: Blue, value: blue}
`

func TestParseSchemaJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := ParseSchema([]byte(jsonSchemaDoc))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	fromYAML, err := ParseSchema([]byte(yamlSchemaDoc))
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if diff := cmp.Diff(fromJSON, fromYAML, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("encodings disagree (-json +yaml):\n%s", diff)
	}

	email, ok := fromJSON.FieldByName("email")
	if !ok || email.MinLength() != 3 {
		t.Fatalf("email field = %+v/%v", email, ok)
	}
	colors, _ := fromJSON.FieldByName("colors")
	if !colors.DefaultValue.Contains("red") {
		t.Fatalf("checkbox default = %+v", colors.DefaultValue)
	}
}

func TestParseSchemaRoundTrip(t *testing.T) {
	parsed, err := ParseSchema([]byte(jsonSchemaDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	encoded, err := EncodeSchema(parsed)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	reparsed, err := ParseSchema(encoded)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if diff := cmp.Diff(parsed, reparsed, cmp.AllowUnexported(Value{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSchemaRejectsGarbage(t *testing.T) {
	if _, err := ParseSchema(nil); err == nil {
		t.Fatal("empty document must error")
	}
	if _, err := ParseSchema([]byte("   \n")); err == nil {
		t.Fatal("blank document must error")
	}
	if _, err := ParseSchema([]byte("{broken")); err == nil {
		t.Fatal("malformed document must error")
	}
}

func TestLoadSchemaFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.json": &fstest.MapFile{Data: []byte(jsonSchemaDoc)},
	}
	form, err := LoadSchemaFS(fsys, "forms/contact.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if form.ID != "form-1" {
		t.Fatalf("id = %q", form.ID)
	}
	if _, err := LoadSchemaFS(fsys, "missing.json"); err == nil {
		t.Fatal("missing file must error")
	}
}
