// Package session owns the in-progress record for one rendering session and
// orchestrates the validate-then-submit and validation-bypassing draft-save
// transitions. The controller is cooperative: it expects a single goroutine
// driving it, the busy guard is a state check rather than a lock.
package session

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Status names the controller's state machine positions.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusValidating  Status = "validating"
	StatusSubmitting  Status = "submitting"
	StatusSavingDraft Status = "saving_draft"
)

// LifecycleFunc is the externally supplied submit or draft-save operation.
// It may suspend arbitrarily long; the controller awaits it with no timeout
// and no cancellation beyond the caller's ctx.
type LifecycleFunc func(ctx context.Context, data schema.Record) error

// Option configures a Controller before its record is seeded.
type Option func(*Controller)

// WithInitialData seeds the working record. The controller copies the map.
func WithInitialData(data schema.Record) Option {
	return func(c *Controller) {
		c.data = data.Clone()
	}
}

// WithSubmitFunc installs the submit callback.
func WithSubmitFunc(fn LifecycleFunc) Option {
	return func(c *Controller) {
		c.submit = fn
	}
}

// WithDraftFunc installs the draft-save callback. Without one, SaveDraft is
// a no-op that reports false.
func WithDraftFunc(fn LifecycleFunc) Option {
	return func(c *Controller) {
		c.saveDraft = fn
	}
}

// WithFocusFunc installs the hook invoked with the first erroring field name
// after a failed Submit, so the host can scroll the control into view.
func WithFocusFunc(fn func(fieldName string)) Option {
	return func(c *Controller) {
		c.focus = fn
	}
}

// WithLogger overrides the logger used for non-fatal callback failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller tracks the working record, current errors, and busy state for
// one session against a fixed schema.
type Controller struct {
	schema    schema.FormSchema
	data      schema.Record
	errors    validation.Errors
	status    Status
	notice    string
	submit    LifecycleFunc
	saveDraft LifecycleFunc
	focus     func(string)
	logger    *slog.Logger
}

// New builds a controller and seeds the record: initial data first, then
// every toggle field absent from the record receives its default value or
// false. The seeding happens exactly once, here.
func New(formSchema schema.FormSchema, options ...Option) *Controller {
	c := &Controller{
		schema: formSchema,
		data:   schema.Record{},
		errors: validation.Errors{},
		status: StatusIdle,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.data == nil {
		c.data = schema.Record{}
	}
	c.seedToggles(c.data)
	return c
}

func (c *Controller) seedToggles(into schema.Record) {
	for _, field := range c.schema.Fields() {
		if field.Type != schema.FieldTypeToggle {
			continue
		}
		if !into.Get(field.Name).IsAbsent() {
			continue
		}
		if on, ok := field.DefaultValue.AsBool(); ok {
			into[field.Name] = schema.Bool(on)
		} else {
			into[field.Name] = schema.Bool(false)
		}
	}
}

// Status reports the controller's current state.
func (c *Controller) Status() Status {
	return c.status
}

// Busy reports whether a lifecycle operation is in flight. Hosts disable
// both actions while either runs.
func (c *Controller) Busy() bool {
	return c.status != StatusIdle
}

// Data returns a copy of the working record.
func (c *Controller) Data() schema.Record {
	return c.data.Clone()
}

// Errors returns the validation errors from the last Submit attempt.
func (c *Controller) Errors() validation.Errors {
	out := make(validation.Errors, len(c.errors))
	for name, msg := range c.errors {
		out[name] = msg
	}
	return out
}

// Notice returns the last non-fatal callback failure message, empty when the
// previous lifecycle operation succeeded.
func (c *Controller) Notice() string {
	return c.notice
}

// ChangeField updates the working record at the field's data key and
// optimistically clears any error on that key. Re-evaluation only happens on
// the next Submit, not per keystroke.
func (c *Controller) ChangeField(name string, value schema.Value) {
	c.data[name] = value
	delete(c.errors, name)
}

// Submit validates the full schema against the current record. With errors
// it stays idle, keeps the errors, signals focus for the first erroring
// field in schema order, and performs no storage effect. Without errors it
// runs the submit callback; a callback failure is logged and surfaced via
// Notice but never unwinds the record. Returns whether the record was
// accepted (validation passed and the callback ran).
func (c *Controller) Submit(ctx context.Context) bool {
	if c.Busy() || c.submit == nil {
		return false
	}

	c.status = StatusValidating
	errs := validation.Validate(c.schema, c.data)
	if !errs.Valid() {
		c.errors = errs
		c.status = StatusIdle
		if c.focus != nil {
			if first := errs.First(c.schema); first != "" {
				c.focus(first)
			}
		}
		return false
	}

	c.errors = validation.Errors{}
	c.status = StatusSubmitting
	c.runCallback(ctx, c.submit, "submit")
	c.status = StatusIdle
	return true
}

// SaveDraft bypasses validation entirely and runs the draft-save callback
// with the current record, incomplete or not. Returns whether the callback
// ran.
func (c *Controller) SaveDraft(ctx context.Context) bool {
	if c.Busy() || c.saveDraft == nil {
		return false
	}

	c.status = StatusSavingDraft
	c.runCallback(ctx, c.saveDraft, "save draft")
	c.status = StatusIdle
	return true
}

func (c *Controller) runCallback(ctx context.Context, fn LifecycleFunc, op string) {
	c.notice = ""
	if err := fn(ctx, c.data.Clone()); err != nil {
		c.logger.Error("form lifecycle callback failed", "op", op, "error", err)
		c.notice = op + " failed: " + err.Error()
	}
}

// Clear resets the working record to just the toggle defaults and drops all
// errors. This is a full reset, not a revert to the initial data.
func (c *Controller) Clear() {
	c.data = schema.Record{}
	c.seedToggles(c.data)
	c.errors = validation.Errors{}
	c.notice = ""
}
