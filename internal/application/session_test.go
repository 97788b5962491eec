package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"lookbook/internal/domain"
	"lookbook/internal/ports"
)

// fakeStore scripts the remote store's responses. Each Save records the
// credential it was called with and pops the next scripted error; a nil
// error echoes the payload back like the real server.
type fakeStore struct {
	saveErrs    []error
	saveCount   int
	credentials []string
	echo        *domain.Catalog // overrides the default payload echo
}

func (f *fakeStore) Load(ctx context.Context) (*domain.Catalog, error) {
	return domain.NewCatalog(), nil
}

func (f *fakeStore) Save(ctx context.Context, snapshot *domain.Catalog, credential string) (*domain.Catalog, error) {
	f.credentials = append(f.credentials, credential)
	var err error
	if f.saveCount < len(f.saveErrs) {
		err = f.saveErrs[f.saveCount]
	}
	f.saveCount++
	if err != nil {
		return nil, err
	}
	if f.echo != nil {
		return f.echo, nil
	}
	return snapshot.Clone(), nil
}

func sessionCatalog() *domain.Catalog {
	c := domain.NewCatalog()
	c.Items = map[string][]string{
		"Hat":   {"src_page_1"},
		"Scarf": {"src_page_1"},
	}
	c.Pages = map[string][]domain.PageEntry{
		"src_page_1": {
			{Name: "Hat", Category: "Accessories"},
			{Name: "Scarf", Category: "Accessories"},
		},
	}
	return c
}

func canonical(t *testing.T, c *domain.Catalog) []byte {
	t.Helper()
	raw, err := c.Canonical()
	if err != nil {
		t.Fatalf("Canonical failed: %v", err)
	}
	return raw
}

func TestEditSession_CommitAdoptsEcho(t *testing.T) {
	catalog := sessionCatalog()
	store := &fakeStore{}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if session.State() != StateApplying {
		t.Fatalf("state = %v", session.State())
	}
	// Optimistic: the live catalog already shows the edit.
	if !catalog.HasItem("Beanie") {
		t.Fatal("local apply not visible before persist")
	}

	if err := session.Persist(context.Background()); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if session.State() != StateCommitted {
		t.Errorf("state = %v, want committed", session.State())
	}
	if !catalog.HasItem("Beanie") || catalog.HasItem("Hat") {
		t.Error("committed catalog lost the edit")
	}
}

func TestEditSession_CommitPrefersServerCopy(t *testing.T) {
	catalog := sessionCatalog()

	// The server normalized something; its echo differs from the payload.
	serverCopy := sessionCatalog()
	serverCopy.Items["Beanie"] = []string{"src_page_1"}
	delete(serverCopy.Items, "Hat")
	serverCopy.SourceLabels["src"] = "Server Label"

	store := &fakeStore{echo: serverCopy}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.Persist(context.Background()); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	if catalog.SourceLabels["src"] != "Server Label" {
		t.Error("server echo was not adopted as the new local state")
	}
}

func TestEditSession_RollbackRestoresExactBytes(t *testing.T) {
	catalog := sessionCatalog()
	before := canonical(t, catalog)

	store := &fakeStore{saveErrs: []error{NewTransportError(500, "boom")}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	err := session.Persist(context.Background())
	if err == nil {
		t.Fatal("expected persist to fail")
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want TransportError", err)
	}

	if session.State() != StateRolledBack {
		t.Errorf("state = %v, want rolled back", session.State())
	}
	if !bytes.Equal(before, canonical(t, catalog)) {
		t.Error("rollback did not restore the catalog byte for byte")
	}
}

func TestEditSession_AuthChallengeKeepsEdit(t *testing.T) {
	catalog := sessionCatalog()
	store := &fakeStore{saveErrs: []error{ErrAuthRequired, nil}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	err := session.Persist(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v, want ErrAuthRequired", err)
	}

	// The local edit survives the challenge; the session waits for a key.
	if !catalog.HasItem("Beanie") {
		t.Error("local edit rolled back on auth challenge")
	}
	if session.State() != StatePersisting {
		t.Errorf("state = %v, want persisting", session.State())
	}

	if err := session.PersistWithCredential(context.Background(), "sekrit"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if session.State() != StateCommitted {
		t.Errorf("state = %v, want committed", session.State())
	}
	if got := store.credentials; len(got) != 2 || got[0] != "" || got[1] != "sekrit" {
		t.Errorf("credentials sent = %v", got)
	}
	// The accepted key is kept for later edits.
	if !session.HasCredential() {
		t.Error("accepted credential was not retained")
	}
}

func TestEditSession_RetryRejectionRollsBack(t *testing.T) {
	catalog := sessionCatalog()
	before := canonical(t, catalog)
	store := &fakeStore{saveErrs: []error{ErrAuthRequired, ErrAuthRequired}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.Persist(context.Background()); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v", err)
	}
	if err := session.PersistWithCredential(context.Background(), "wrong"); err == nil {
		t.Fatal("expected second rejection to fail")
	}

	if session.State() != StateRolledBack {
		t.Errorf("state = %v, want rolled back", session.State())
	}
	if !bytes.Equal(before, canonical(t, catalog)) {
		t.Error("rollback did not restore the catalog")
	}
	if session.HasCredential() {
		t.Error("rejected credential was retained")
	}
}

func TestEditSession_AbortRollsBack(t *testing.T) {
	catalog := sessionCatalog()
	before := canonical(t, catalog)
	store := &fakeStore{saveErrs: []error{ErrAuthRequired}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.Persist(context.Background()); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v", err)
	}

	session.Abort()
	if session.State() != StateRolledBack {
		t.Errorf("state = %v, want rolled back", session.State())
	}
	if !bytes.Equal(before, canonical(t, catalog)) {
		t.Error("abort did not restore the catalog")
	}
}

func TestEditSession_RejectsConcurrentEdit(t *testing.T) {
	catalog := sessionCatalog()
	store := &fakeStore{saveErrs: []error{ErrAuthRequired}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.Persist(context.Background()); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v", err)
	}
	if !session.InFlight() {
		t.Fatal("InFlight should report true while waiting on a credential")
	}

	if err := session.Begin("Scarf", "Wrap", "Accessories", false); !errors.Is(err, ErrEditInFlight) {
		t.Errorf("error = %v, want ErrEditInFlight", err)
	}
}

func TestEditSession_BeginValidationError(t *testing.T) {
	catalog := sessionCatalog()
	session := NewEditSession(&fakeStore{}, catalog)

	err := session.Begin("Missing", "Name", "Accessories", false)
	if err == nil {
		t.Fatal("expected error for unknown item")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("error = %T, want ValidationError", err)
	}
	if catalog.HasItem("Name") {
		t.Error("failed begin mutated the catalog")
	}
}

func TestEditSession_RunPromptsOnce(t *testing.T) {
	catalog := sessionCatalog()
	store := &fakeStore{saveErrs: []error{ErrAuthRequired, nil}}
	session := NewEditSession(store, catalog)

	prompts := 0
	prompter := ports.CredentialPrompterFunc(func() (string, bool) {
		prompts++
		return "sekrit", true
	})

	if err := session.Run(context.Background(), "Hat", "Beanie", "Accessories", false, prompter); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if prompts != 1 {
		t.Errorf("prompted %d times, want 1", prompts)
	}
	if session.State() != StateCommitted {
		t.Errorf("state = %v, want committed", session.State())
	}
}

func TestEditSession_RunDeclinedPromptRollsBack(t *testing.T) {
	catalog := sessionCatalog()
	before := canonical(t, catalog)
	store := &fakeStore{saveErrs: []error{ErrAuthRequired}}
	session := NewEditSession(store, catalog)

	prompter := ports.CredentialPrompterFunc(func() (string, bool) {
		return "", false
	})

	err := session.Run(context.Background(), "Hat", "Beanie", "Accessories", false, prompter)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v, want ErrAuthRequired", err)
	}
	if !bytes.Equal(before, canonical(t, catalog)) {
		t.Error("declined prompt did not roll the catalog back")
	}
}

// blockingStore holds a Save open until released, so a test can observe
// the session while a write is in flight on another goroutine.
type blockingStore struct {
	fakeStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) Save(ctx context.Context, snapshot *domain.Catalog, credential string) (*domain.Catalog, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeStore.Save(ctx, snapshot, credential)
}

func TestEditSession_CatalogStableWhileWriteInFlight(t *testing.T) {
	catalog := sessionCatalog()
	before := canonical(t, catalog)
	store := &blockingStore{
		fakeStore: fakeStore{saveErrs: []error{NewTransportError(500, "boom")}},
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.StartPersist(); err != nil {
		t.Fatalf("StartPersist failed: %v", err)
	}

	outcomes := make(chan PersistOutcome, 1)
	go func() {
		outcomes <- session.WriteSnapshot(context.Background())
	}()

	<-store.entered
	// The write is running on another goroutine. The catalog must stay
	// readable and untouched the whole time: the UI keeps rendering it
	// while a save is in flight.
	for i := 0; i < 100; i++ {
		session.Catalog().CategorizeForRender()
		if !catalog.HasItem("Beanie") {
			t.Fatal("optimistic edit vanished while the write was in flight")
		}
	}
	close(store.release)
	out := <-outcomes

	// The failed write alone changes nothing; the rollback happens in
	// FinishPersist, on this goroutine.
	if out.Err() == nil {
		t.Fatal("expected the write to fail")
	}
	if session.State() != StatePersisting {
		t.Fatalf("state = %v, want persisting until FinishPersist", session.State())
	}
	if !catalog.HasItem("Beanie") {
		t.Fatal("write goroutine mutated the catalog")
	}

	if err := session.FinishPersist(out); err == nil {
		t.Fatal("expected FinishPersist to surface the failure")
	}
	if session.State() != StateRolledBack {
		t.Errorf("state = %v, want rolled back", session.State())
	}
	if !bytes.Equal(before, canonical(t, catalog)) {
		t.Error("rollback did not restore the catalog")
	}
}

func TestEditSession_FinishPersistAuthChallenge(t *testing.T) {
	catalog := sessionCatalog()
	store := &fakeStore{saveErrs: []error{ErrAuthRequired, nil}}
	session := NewEditSession(store, catalog)

	if err := session.Begin("Hat", "Beanie", "Accessories", false); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := session.StartPersist(); err != nil {
		t.Fatalf("StartPersist failed: %v", err)
	}

	err := session.FinishPersist(session.WriteSnapshot(context.Background()))
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("error = %v, want ErrAuthRequired", err)
	}
	if session.State() != StatePersisting {
		t.Fatalf("state = %v, want persisting", session.State())
	}
	if !catalog.HasItem("Beanie") {
		t.Error("local edit rolled back on auth challenge")
	}

	retry := session.WriteSnapshotWith(context.Background(), "sekrit")
	if err := session.FinishPersist(retry); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if session.State() != StateCommitted {
		t.Errorf("state = %v, want committed", session.State())
	}
	if !session.HasCredential() {
		t.Error("accepted credential was not retained")
	}
}

var _ ports.SnapshotStore = (*fakeStore)(nil)
