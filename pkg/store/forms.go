package store

import "github.com/goliatone/go-formflow/pkg/schema"

// FormState is the forms collection snapshot: an ordered sequence of schemas
// plus the id of the schema currently open in the authoring flow.
type FormState struct {
	Forms        []schema.FormSchema `json:"forms"`
	ActiveFormID string              `json:"activeFormId,omitempty"`
}

func cloneFormState(s FormState) FormState {
	out := FormState{ActiveFormID: s.ActiveFormID}
	out.Forms = append([]schema.FormSchema(nil), s.Forms...)
	return out
}

// FormStore owns the authored schemas.
type FormStore struct {
	state *Store[FormState]
}

// NewFormStore seeds a form store with an initial snapshot.
func NewFormStore(initial FormState) *FormStore {
	return &FormStore{state: New(initial, cloneFormState)}
}

// Snapshot returns a copy of the current state.
func (s *FormStore) Snapshot() FormState {
	return s.state.Read()
}

// Subscribe attaches a listener fired after every mutation.
func (s *FormStore) Subscribe(fn func(FormState)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// Add appends a schema to the collection.
func (s *FormStore) Add(form schema.FormSchema) {
	s.state.Mutate(func(state *FormState) {
		state.Forms = append(state.Forms, form)
	})
}

// Update replaces the schema with the given id in place. Unknown ids leave
// the collection untouched; insertion order is preserved either way.
func (s *FormStore) Update(id string, form schema.FormSchema) {
	s.state.Mutate(func(state *FormState) {
		for i := range state.Forms {
			if state.Forms[i].ID == id {
				state.Forms[i] = form
				return
			}
		}
	})
}

// Delete removes the schema with the given id and clears the active id when
// it pointed at the removed schema.
func (s *FormStore) Delete(id string) {
	s.state.Mutate(func(state *FormState) {
		kept := state.Forms[:0]
		for _, form := range state.Forms {
			if form.ID != id {
				kept = append(kept, form)
			}
		}
		state.Forms = kept
		if state.ActiveFormID == id {
			state.ActiveFormID = ""
		}
	})
}

// SetActive records which schema the authoring flow has open.
func (s *FormStore) SetActive(id string) {
	s.state.Mutate(func(state *FormState) {
		state.ActiveFormID = id
	})
}

// GetByID returns the schema with the given id. The boolean is the explicit
// not-found result callers render as an empty state.
func (s *FormStore) GetByID(id string) (schema.FormSchema, bool) {
	for _, form := range s.state.Read().Forms {
		if form.ID == id {
			return form, true
		}
	}
	return schema.FormSchema{}, false
}

// List returns the schemas in collection order.
func (s *FormStore) List() []schema.FormSchema {
	return s.state.Read().Forms
}
