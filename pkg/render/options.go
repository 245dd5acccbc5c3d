package render

import "github.com/goliatone/go-formflow/pkg/schema"

// RenderOptions describe per-request data renderers use to customise output
// without mutating the schema.
type RenderOptions struct {
	// Values pre-populates controls, keyed by field name.
	Values schema.Record
	// Errors surfaces validation feedback keyed by field name; renderers map
	// these into inline markup next to the offending control.
	Errors map[string]string
	// SubmitLabel and DraftLabel override the action button captions.
	SubmitLabel string
	DraftLabel  string
	// Hidden adds hidden inputs (for example the schema id and version
	// stamped into a rendered form) by name.
	Hidden map[string]string
}
