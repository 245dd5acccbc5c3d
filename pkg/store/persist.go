package store

import (
	"log/slog"

	"github.com/goliatone/go-formflow/pkg/storage"
)

// Default keys the engine uses for the two persisted namespaces.
const (
	FormsKey       = "forms"
	SubmissionsKey = "submissions"
)

// LoadFormState reads the persisted forms snapshot, returning the zero
// snapshot when nothing has been saved or the medium is absent.
func LoadFormState(col *storage.Collection[FormState], logger *slog.Logger) FormState {
	if col == nil {
		return FormState{}
	}
	snapshot, ok, err := col.Load()
	if err != nil {
		logOf(logger).Error("load forms collection", "error", err)
		return FormState{}
	}
	if !ok {
		return FormState{}
	}
	return snapshot
}

// LoadSubmissionState reads the persisted submissions snapshot.
func LoadSubmissionState(col *storage.Collection[SubmissionState], logger *slog.Logger) SubmissionState {
	if col == nil {
		return SubmissionState{}
	}
	snapshot, ok, err := col.Load()
	if err != nil {
		logOf(logger).Error("load submissions collection", "error", err)
		return SubmissionState{}
	}
	if !ok {
		return SubmissionState{}
	}
	return snapshot
}

// PersistForms subscribes the collection to the store so every mutation
// replaces the persisted snapshot. Persistence failures are logged and
// otherwise ignored; the in-memory state is authoritative.
func PersistForms(s *FormStore, col *storage.Collection[FormState], logger *slog.Logger) (cancel func()) {
	if s == nil || col == nil {
		return func() {}
	}
	return s.Subscribe(func(snapshot FormState) {
		if err := col.Save(snapshot); err != nil {
			logOf(logger).Error("persist forms collection", "error", err)
		}
	})
}

// PersistSubmissions mirrors PersistForms for the submissions namespace.
func PersistSubmissions(s *SubmissionStore, col *storage.Collection[SubmissionState], logger *slog.Logger) (cancel func()) {
	if s == nil || col == nil {
		return func() {}
	}
	return s.Subscribe(func(snapshot SubmissionState) {
		if err := col.Save(snapshot); err != nil {
			logOf(logger).Error("persist submissions collection", "error", err)
		}
	})
}

func logOf(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
