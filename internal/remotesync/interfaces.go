package remotesync

import (
	"context"

	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/remote"
	"github.com/hishabkhata/hishab/internal/store"
)

// Ledger is the slice of the transaction store the engine needs.
// Enumeration cannot fail: the store fails soft to an empty list, so a
// broken ledger produces an empty pass rather than an aborted one.
type Ledger interface {
	// ListUnsynced returns the snapshot of transactions eligible for
	// this pass, most-recently-created first.
	ListUnsynced(ctx context.Context) []domain.Transaction

	// Update merges a patch onto the transaction with the given id.
	Update(ctx context.Context, id string, patch store.Patch) (*domain.Transaction, error)
}

// AttachmentUploader resolves a local attachment reference to a durable
// remote URL. References that are already remote must pass through
// unchanged.
type AttachmentUploader interface {
	Upload(ctx context.Context, localRef string) (string, error)
}

// TransactionPoster submits one transaction to the remote authority.
type TransactionPoster interface {
	PostTransaction(ctx context.Context, txn domain.Transaction) (*remote.Accepted, error)
}
