package schema

import "fmt"

// Lint reports authoring problems the engine deliberately tolerates at
// runtime: duplicate data keys (later field wins), duplicate ids, option
// lists missing from choice fields, and unknown field types (which render
// nothing). Advisory only; an empty result means the schema is clean.
func Lint(s FormSchema) []string {
	var problems []string

	ids := make(map[string]struct{})
	names := make(map[string]struct{})

	for _, section := range s.Sections {
		if _, dup := ids[section.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate section id %q", section.ID))
		}
		ids[section.ID] = struct{}{}

		for _, field := range section.Fields {
			if _, dup := ids[field.ID]; dup {
				problems = append(problems, fmt.Sprintf("duplicate field id %q", field.ID))
			}
			ids[field.ID] = struct{}{}

			if _, dup := names[field.Name]; dup {
				problems = append(problems, fmt.Sprintf("duplicate field name %q: later field shadows earlier data", field.Name))
			}
			names[field.Name] = struct{}{}

			if !field.Type.Known() {
				problems = append(problems, fmt.Sprintf("field %q has unknown type %q and will not render", field.Name, field.Type))
			}
			if field.Type.NeedsOptions() && len(field.Options) == 0 {
				problems = append(problems, fmt.Sprintf("field %q is a %s but has no options", field.Name, field.Type))
			}
		}
	}

	return problems
}
