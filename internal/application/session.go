package application

import (
	"context"
	"errors"

	"lookbook/internal/domain"
	"lookbook/internal/ports"
)

// SessionState is the lifecycle of one edit.
type SessionState int

const (
	StateIdle SessionState = iota
	StateApplying
	StatePersisting
	StateCommitted
	StateRolledBack
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateApplying:
		return "applying"
	case StatePersisting:
		return "persisting"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// EditSession drives one optimistic-apply-then-persist cycle over the live
// catalog: snapshot before mutating, apply locally, write the full payload
// to the store, and either adopt the server's echo or roll back wholesale.
// Only one session may be persisting at a time; callers must not start a
// new edit while InFlight reports true.
//
// The session is not internally synchronized. Every method that mutates the
// catalog or the session state must run on the goroutine that owns the
// catalog. A UI that performs the store write on a background goroutine
// uses the split form (StartPersist, WriteSnapshot, FinishPersist):
// WriteSnapshot only reads, so views can keep rendering the catalog while
// the write is in flight, and commit or rollback happens in FinishPersist
// back on the owning goroutine.
//
// The store has no optimistic-concurrency token. Two concurrent editors can
// race and the last write wins; that is a known property of the store, not
// something this session detects.
type EditSession struct {
	store   ports.SnapshotStore
	catalog *domain.Catalog

	credential string
	state      SessionState
	snapshot   *domain.Catalog
}

// NewEditSession creates a session around the live catalog.
func NewEditSession(store ports.SnapshotStore, catalog *domain.Catalog) *EditSession {
	return &EditSession{store: store, catalog: catalog, state: StateIdle}
}

// State returns the current session state.
func (s *EditSession) State() SessionState { return s.state }

// Catalog returns the live catalog the session mutates.
func (s *EditSession) Catalog() *domain.Catalog { return s.catalog }

// InFlight reports whether a persist is outstanding. UI triggers for a new
// edit must be disabled while this is true.
func (s *EditSession) InFlight() bool { return s.state == StatePersisting }

// SetCredential pre-seeds the edit key (e.g. from configuration) so the
// first write does not prompt.
func (s *EditSession) SetCredential(credential string) { s.credential = credential }

// HasCredential reports whether an edit key is held for this session.
func (s *EditSession) HasCredential() bool { return s.credential != "" }

// Begin snapshots the catalog and applies the compound edit locally. The
// caller re-renders immediately afterwards: the UI is optimistic.
func (s *EditSession) Begin(oldName, newName, category string, trashed bool) error {
	if s.state == StatePersisting {
		return ErrEditInFlight
	}
	snapshot := s.catalog.Clone()
	if err := s.catalog.ApplyEdit(oldName, newName, category, trashed); err != nil {
		return &ValidationError{Field: "name", Message: err.Error()}
	}
	s.snapshot = snapshot
	s.state = StateApplying
	return nil
}

// PersistOutcome carries the result of one store write from the goroutine
// that performed it back to the goroutine that owns the catalog, which
// applies it with FinishPersist.
type PersistOutcome struct {
	echoed     *domain.Catalog
	credential string
	retried    bool
	err        error
}

// Err returns the store error the outcome carries, if any.
func (o PersistOutcome) Err() error { return o.err }

// StartPersist moves the session into Persisting. Call it on the owning
// goroutine before handing the write itself to WriteSnapshot on a
// background goroutine.
func (s *EditSession) StartPersist() error {
	if s.state != StateApplying {
		return ErrEditInFlight
	}
	s.state = StatePersisting
	return nil
}

// WriteSnapshot performs the store round-trip and nothing else. It reads
// the catalog to serialize it but never mutates it or the session state,
// so it may run on a background goroutine while views keep reading the
// catalog. Apply the outcome with FinishPersist on the owning goroutine.
func (s *EditSession) WriteSnapshot(ctx context.Context) PersistOutcome {
	echoed, err := s.store.Save(ctx, s.catalog, s.credential)
	return PersistOutcome{echoed: echoed, err: err}
}

// WriteSnapshotWith retries the write with a freshly supplied edit key.
// Same concurrency contract as WriteSnapshot.
func (s *EditSession) WriteSnapshotWith(ctx context.Context, credential string) PersistOutcome {
	echoed, err := s.store.Save(ctx, s.catalog, credential)
	return PersistOutcome{echoed: echoed, credential: credential, retried: true, err: err}
}

// FinishPersist applies a write outcome on the owning goroutine. Success
// commits, adopting the server's echo; a first auth challenge keeps the
// local edit and leaves the session in Persisting, waiting for exactly one
// of WriteSnapshotWith or Abort; any other failure, including a rejected
// retry, rolls the live catalog back to the pre-edit snapshot. An accepted
// retry key is kept so later edits do not prompt again.
func (s *EditSession) FinishPersist(out PersistOutcome) error {
	if s.state != StatePersisting {
		return ErrEditInFlight
	}
	if out.err != nil {
		if errors.Is(out.err, ErrAuthRequired) && !out.retried {
			return ErrAuthRequired
		}
		s.rollback()
		return out.err
	}
	if out.retried {
		s.credential = out.credential
	}
	s.commit(out.echoed)
	return nil
}

// Persist writes the full catalog to the store, blocking until the outcome
// is applied. Single-goroutine convenience over the split form; see
// FinishPersist for the outcome semantics.
func (s *EditSession) Persist(ctx context.Context) error {
	if err := s.StartPersist(); err != nil {
		return err
	}
	return s.FinishPersist(s.WriteSnapshot(ctx))
}

// PersistWithCredential retries the write once with a freshly supplied edit
// key, blocking until the outcome is applied.
func (s *EditSession) PersistWithCredential(ctx context.Context, credential string) error {
	if s.state != StatePersisting {
		return ErrEditInFlight
	}
	return s.FinishPersist(s.WriteSnapshotWith(ctx, credential))
}

// Abort abandons a persist that is waiting on a credential, rolling the
// catalog back.
func (s *EditSession) Abort() {
	if s.state != StatePersisting && s.state != StateApplying {
		return
	}
	s.rollback()
}

// Run executes a full edit cycle: apply, persist, and on an auth challenge
// prompt for the edit key exactly once. Convenience for callers that can
// block on the prompt (CLI, MCP); interactive UIs drive the step methods
// directly.
func (s *EditSession) Run(ctx context.Context, oldName, newName, category string, trashed bool, prompter ports.CredentialPrompter) error {
	if err := s.Begin(oldName, newName, category, trashed); err != nil {
		return err
	}

	err := s.Persist(ctx)
	if !errors.Is(err, ErrAuthRequired) {
		return err
	}

	if prompter == nil {
		s.Abort()
		return ErrAuthRequired
	}
	credential, ok := prompter.PromptCredential()
	if !ok {
		s.Abort()
		return ErrAuthRequired
	}
	return s.PersistWithCredential(ctx, credential)
}

func (s *EditSession) commit(echoed *domain.Catalog) {
	// Adopt the server's copy: it is authoritative if the server
	// normalized anything.
	if echoed != nil {
		s.catalog.Replace(echoed)
	}
	s.snapshot = nil
	s.state = StateCommitted
}

func (s *EditSession) rollback() {
	if s.snapshot != nil {
		s.catalog.Replace(s.snapshot)
	}
	s.snapshot = nil
	s.state = StateRolledBack
}
