// Package render defines the contracts between form schemas and their
// output representations, plus the renderer registry used for discovery.
package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Renderer converts a FormSchema into a byte representation (HTML, text,
// etc.) for one rendering pass.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FormSchema, options RenderOptions) ([]byte, error)
}

// FieldRenderer maps one field definition plus its current value and error
// state to control markup. Implementations return an empty string, without
// an error, for field types they do not support; the silent skip is the
// engine's documented policy for unknown types.
type FieldRenderer interface {
	RenderField(field schema.FormField, value schema.Value, errorMessage string) (string, error)
}
