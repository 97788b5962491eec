package ports

import (
	"context"

	"lookbook/internal/domain"
)

// SnapshotStore is the remote catalog store. It deals in whole snapshots:
// there is no partial update and no server-side merge, so Save always ships
// the complete catalog and the store's reply is the new source of truth.
type SnapshotStore interface {
	// Load fetches the current snapshot.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Save replaces the stored snapshot. The credential authorizes the
	// write; an empty credential is sent as no credential at all. On
	// success the server's echoed copy of the payload is returned.
	Save(ctx context.Context, snapshot *domain.Catalog, credential string) (*domain.Catalog, error)
}

// CredentialPrompter asks the user for an edit key when the store rejects
// an unauthenticated write. ok is false when the user declines.
type CredentialPrompter interface {
	PromptCredential() (credential string, ok bool)
}

// CredentialPrompterFunc adapts a function to the CredentialPrompter interface.
type CredentialPrompterFunc func() (string, bool)

func (f CredentialPrompterFunc) PromptCredential() (string, bool) { return f() }

// BlobStore is the server-side storage for the snapshot blob.
type BlobStore interface {
	// Get returns the stored blob, or nil when nothing has been written yet.
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, blob []byte) error
	Close() error
}
