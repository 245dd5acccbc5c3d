// Package formflow wires the schema, rendering, session, and persistence
// layers into one engine. Callers author schemas, render them through a
// registered renderer, and run fill sessions whose submit and draft-save
// transitions land in the submission store.
package formflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/storage"
	"github.com/goliatone/go-formflow/pkg/store"
)

// DefaultRendererName is used when a render request leaves the renderer
// unspecified.
const DefaultRendererName = "vanilla"

var (
	// ErrFormNotFound reports a form id absent from the form store.
	ErrFormNotFound = errors.New("formflow: form not found")
	// ErrSubmissionNotFound reports a submission id absent from both the
	// submission and draft collections.
	ErrSubmissionNotFound = errors.New("formflow: submission not found")
)

// Option configures an Engine.
type Option func(*Engine)

// WithMedium selects the persistence medium backing both collections.
// Without one the engine runs in memory only.
func WithMedium(medium storage.Medium) Option {
	return func(e *Engine) {
		e.medium = medium
	}
}

// WithRegistry supplies a pre-populated renderer registry. Without one the
// engine registers the vanilla HTML renderer under the default name.
func WithRegistry(registry *render.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithLogger overrides the logger used for persistence and lifecycle
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the timestamp source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides record id generation. Tests pin it.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// Engine owns the stores and the renderer registry for one application.
type Engine struct {
	registry    *render.Registry
	medium      storage.Medium
	forms       *store.FormStore
	submissions *store.SubmissionStore
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	cancels     []func()
}

// New builds an engine: collections are loaded from the medium (when one is
// configured), the stores are seeded from those snapshots, and every store
// mutation is persisted back.
func New(options ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if e.registry == nil {
		e.registry = render.NewRegistry()
		e.registry.MustRegister(vanilla.New())
	}

	formsCol := storage.NewCollection[store.FormState](e.medium, store.FormsKey)
	subsCol := storage.NewCollection[store.SubmissionState](e.medium, store.SubmissionsKey)

	e.forms = store.NewFormStore(store.LoadFormState(formsCol, e.logger))
	e.submissions = store.NewSubmissionStore(
		store.LoadSubmissionState(subsCol, e.logger),
		store.WithClock(e.now),
	)

	e.cancels = append(e.cancels,
		store.PersistForms(e.forms, formsCol, e.logger),
		store.PersistSubmissions(e.submissions, subsCol, e.logger),
	)
	return e
}

// Close detaches the persistence subscribers. The medium, if it needs
// closing, belongs to the caller.
func (e *Engine) Close() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}

// Forms exposes the form store for authoring flows.
func (e *Engine) Forms() *store.FormStore {
	return e.forms
}

// Submissions exposes the submission store.
func (e *Engine) Submissions() *store.SubmissionStore {
	return e.submissions
}

// Renderers exposes the renderer registry so callers can add outputs.
func (e *Engine) Renderers() *render.Registry {
	return e.registry
}

// CreateForm starts a new schema and adds it to the store.
func (e *Engine) CreateForm(title string) schema.FormSchema {
	form := schema.NewSchema(title)
	e.forms.Add(*form)
	return *form
}

// SaveForm refreshes the schema's UpdatedAt and upserts it: update in place
// when the id exists, append otherwise.
func (e *Engine) SaveForm(form schema.FormSchema) schema.FormSchema {
	form.Touch()
	if _, ok := e.forms.GetByID(form.ID); ok {
		e.forms.Update(form.ID, form)
	} else {
		e.forms.Add(form)
	}
	return form
}

// DeleteForm removes the schema from the store. Submissions captured against
// it are kept; they carry their own copy of the data.
func (e *Engine) DeleteForm(id string) {
	e.forms.Delete(id)
}

// Form resolves a schema by id.
func (e *Engine) Form(id string) (schema.FormSchema, error) {
	form, ok := e.forms.GetByID(id)
	if !ok {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	return form, nil
}

// RenderForm renders the schema through the named renderer. An empty name
// resolves to the default renderer.
func (e *Engine) RenderForm(ctx context.Context, formID, rendererName string, opts render.RenderOptions) ([]byte, error) {
	form, err := e.Form(formID)
	if err != nil {
		return nil, err
	}
	renderer, err := e.registry.Resolve(rendererName, DefaultRendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, opts)
}

// NewSession starts a fill session against the schema. One record id is
// allocated for the whole session and shared by draft saves and the final
// submission, so submitting after a draft save promotes the draft instead of
// leaving it behind.
func (e *Engine) NewSession(formID string, initial schema.Record) (*session.Controller, error) {
	form, err := e.Form(formID)
	if err != nil {
		return nil, err
	}

	recordID := e.newID()
	ctrl := session.New(form,
		session.WithInitialData(initial),
		session.WithLogger(e.logger),
		session.WithSubmitFunc(func(_ context.Context, data schema.Record) error {
			e.submissions.SaveSubmission(e.record(recordID, form, data))
			return nil
		}),
		session.WithDraftFunc(func(_ context.Context, data schema.Record) error {
			e.submissions.SaveDraft(e.record(recordID, form, data))
			return nil
		}),
	)
	return ctrl, nil
}

// EditSession resumes a stored record. Drafts keep their id so submitting
// promotes them; already-submitted records are updated in place and cannot
// be demoted back to drafts, their session has no draft-save action.
func (e *Engine) EditSession(submissionID string) (*session.Controller, error) {
	sub, ok := e.submissions.GetSubmissionByID(submissionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSubmissionNotFound, submissionID)
	}
	form, err := e.Form(sub.FormID)
	if err != nil {
		return nil, err
	}

	options := []session.Option{
		session.WithInitialData(sub.Data),
		session.WithLogger(e.logger),
	}
	if sub.Status == schema.StatusDraft {
		options = append(options,
			session.WithSubmitFunc(func(_ context.Context, data schema.Record) error {
				e.submissions.SaveSubmission(e.record(sub.ID, form, data))
				return nil
			}),
			session.WithDraftFunc(func(_ context.Context, data schema.Record) error {
				e.submissions.SaveDraft(e.record(sub.ID, form, data))
				return nil
			}),
		)
	} else {
		options = append(options,
			session.WithSubmitFunc(func(_ context.Context, data schema.Record) error {
				e.submissions.UpdateSubmission(sub.ID, data)
				return nil
			}),
		)
	}
	return session.New(form, options...), nil
}

func (e *Engine) record(id string, form schema.FormSchema, data schema.Record) schema.FormSubmission {
	return schema.FormSubmission{
		ID:          id,
		FormID:      form.ID,
		FormVersion: form.Version,
		Data:        data,
		SubmittedAt: e.now(),
	}
}
