package schema

import (
	"strings"
	"testing"
)

func TestLintCleanSchema(t *testing.T) {
	form := NewSchema("Contact")
	section := form.AddSection("Details")
	section.AddField("email", "Email", FieldTypeEmail)
	choice := section.AddField("meal", "Meal", FieldTypeDropdown)
	choice.AddOption("Vegetarian")

	if problems := Lint(*form); len(problems) != 0 {
		t.Fatalf("clean schema reported problems: %v", problems)
	}
}

func TestLintFindsProblems(t *testing.T) {
	form := FormSchema{Sections: []FormSection{
		{
			ID: "sec-1",
			Fields: []FormField{
				{ID: "fld-1", Name: "email", Type: FieldTypeEmail},
				{ID: "fld-1", Name: "email", Type: FieldTypeText},
				{ID: "fld-2", Name: "meal", Type: FieldTypeDropdown},
				{ID: "fld-3", Name: "legacy", Type: "signature"},
			},
		},
		{ID: "sec-1"},
	}}

	problems := Lint(form)
	wantFragments := []string{
		`duplicate field id "fld-1"`,
		`duplicate field name "email"`,
		`"meal" is a dropdown but has no options`,
		`unknown type "signature"`,
		`duplicate section id "sec-1"`,
	}
	for _, fragment := range wantFragments {
		found := false
		for _, problem := range problems {
			if strings.Contains(problem, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing problem %q in %v", fragment, problems)
		}
	}
}
