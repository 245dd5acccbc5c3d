package store

import (
	"time"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// SubmissionState is the submissions collection snapshot: finalized
// submissions and in-progress drafts as two parallel ordered sequences, both
// keyed by submission id.
type SubmissionState struct {
	Submissions []schema.FormSubmission `json:"submissions"`
	Drafts      []schema.FormSubmission `json:"drafts"`
}

func cloneSubmissionState(s SubmissionState) SubmissionState {
	return SubmissionState{
		Submissions: append([]schema.FormSubmission(nil), s.Submissions...),
		Drafts:      append([]schema.FormSubmission(nil), s.Drafts...),
	}
}

// SubmissionStore owns the draft and submission collections and the rules
// for moving records between them.
type SubmissionStore struct {
	state *Store[SubmissionState]
	now   func() time.Time
}

// SubmissionOption configures a SubmissionStore.
type SubmissionOption func(*SubmissionStore)

// WithClock overrides the timestamp source used when refreshing records.
func WithClock(now func() time.Time) SubmissionOption {
	return func(s *SubmissionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSubmissionStore seeds a submission store with an initial snapshot.
func NewSubmissionStore(initial SubmissionState, options ...SubmissionOption) *SubmissionStore {
	s := &SubmissionStore{
		state: New(initial, cloneSubmissionState),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *SubmissionStore) Snapshot() SubmissionState {
	return s.state.Read()
}

// Subscribe attaches a listener fired after every mutation.
func (s *SubmissionStore) Subscribe(fn func(SubmissionState)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// SaveSubmission upserts the record into the submission collection with its
// status forced to submitted, and removes any draft carrying the same id.
// Passing a draft's own record with the status overridden is how a draft is
// promoted; last write wins on an id collision.
func (s *SubmissionStore) SaveSubmission(sub schema.FormSubmission) {
	sub.Status = schema.StatusSubmitted
	s.state.Mutate(func(state *SubmissionState) {
		kept := state.Submissions[:0]
		for _, existing := range state.Submissions {
			if existing.ID != sub.ID {
				kept = append(kept, existing)
			}
		}
		state.Submissions = append(kept, sub)

		drafts := state.Drafts[:0]
		for _, draft := range state.Drafts {
			if draft.ID != sub.ID {
				drafts = append(drafts, draft)
			}
		}
		state.Drafts = drafts
	})
}

// SaveDraft upserts the record into the draft collection with its status
// forced to draft: update in place when the id exists, append otherwise.
func (s *SubmissionStore) SaveDraft(draft schema.FormSubmission) {
	draft.Status = schema.StatusDraft
	s.state.Mutate(func(state *SubmissionState) {
		for i := range state.Drafts {
			if state.Drafts[i].ID == draft.ID {
				state.Drafts[i] = draft
				return
			}
		}
		state.Drafts = append(state.Drafts, draft)
	})
}

// UpdateSubmission replaces the data and refreshes the timestamp of the
// record with the given id in whichever collection holds it, preserving the
// record's status. Callers must route drafts versus submissions themselves;
// this operation will silently touch either.
func (s *SubmissionStore) UpdateSubmission(id string, data schema.Record) {
	now := s.now()
	s.state.Mutate(func(state *SubmissionState) {
		for i := range state.Submissions {
			if state.Submissions[i].ID == id {
				state.Submissions[i].Data = data.Clone()
				state.Submissions[i].SubmittedAt = now
			}
		}
		for i := range state.Drafts {
			if state.Drafts[i].ID == id {
				state.Drafts[i].Data = data.Clone()
				state.Drafts[i].SubmittedAt = now
			}
		}
	})
}

// DeleteSubmission removes the id from both collections. Deleting an unknown
// id is a no-op.
func (s *SubmissionStore) DeleteSubmission(id string) {
	s.state.Mutate(func(state *SubmissionState) {
		subs := state.Submissions[:0]
		for _, sub := range state.Submissions {
			if sub.ID != id {
				subs = append(subs, sub)
			}
		}
		state.Submissions = subs

		drafts := state.Drafts[:0]
		for _, draft := range state.Drafts {
			if draft.ID != id {
				drafts = append(drafts, draft)
			}
		}
		state.Drafts = drafts
	})
}

// GetSubmissionByID looks in submissions first, then drafts, returning the
// first match. The boolean is the explicit not-found result.
func (s *SubmissionStore) GetSubmissionByID(id string) (schema.FormSubmission, bool) {
	state := s.state.Read()
	for _, sub := range state.Submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	for _, draft := range state.Drafts {
		if draft.ID == id {
			return draft, true
		}
	}
	return schema.FormSubmission{}, false
}

// GetSubmissionsByFormID returns matching submissions followed by matching
// drafts, each in collection order.
func (s *SubmissionStore) GetSubmissionsByFormID(formID string) []schema.FormSubmission {
	state := s.state.Read()
	var out []schema.FormSubmission
	for _, sub := range state.Submissions {
		if sub.FormID == formID {
			out = append(out, sub)
		}
	}
	for _, draft := range state.Drafts {
		if draft.FormID == formID {
			out = append(out, draft)
		}
	}
	return out
}
