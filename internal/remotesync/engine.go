// Package remotesync pushes locally created transactions to the remote
// server and reconciles the local ledger with what the server accepted.
//
// A pass is strictly sequential: the store does whole-collection
// read-modify-write on every update, so parallel per-record updates would
// race and silently drop each other's writes. One pass at a time per
// device is the caller's responsibility.
//
// Delivery is at-least-once: if the process dies between server acceptance
// and the local patch, the record stays unsynced and the next pass
// resubmits it as a new create. Deduplicating that server-side would need
// idempotency keys and is deliberately not done here.
package remotesync

import (
	"context"
	"fmt"

	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/logger"
	"github.com/hishabkhata/hishab/internal/store"
)

// Result is the aggregate outcome of one sync pass.
type Result struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Engine executes sync passes over the local ledger.
type Engine struct {
	ledger   Ledger
	uploader AttachmentUploader
	poster   TransactionPoster
}

// NewEngine wires a sync engine from its collaborators.
func NewEngine(ledger Ledger, uploader AttachmentUploader, poster TransactionPoster) *Engine {
	return &Engine{
		ledger:   ledger,
		uploader: uploader,
		poster:   poster,
	}
}

// SyncOnce runs exactly one pass over the snapshot of unsynced
// transactions taken at its start. Each record fully completes, success or
// failure, before the next begins; a failed record is logged, counted and
// left untouched in the store for the next pass. One bad record never
// blocks the rest.
func (e *Engine) SyncOnce(ctx context.Context) Result {
	log := logger.FromContext(ctx)

	unsynced := e.ledger.ListUnsynced(ctx)
	log.Info().Int("unsynced_count", len(unsynced)).Msg("Starting sync pass")

	var res Result
	for _, txn := range unsynced {
		if err := e.syncOne(ctx, txn); err != nil {
			log.Warn().
				Err(err).
				Str("transaction_id", txn.ID).
				Msg("Failed to sync transaction")
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	log.Info().
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Int("total", len(unsynced)).
		Msg("Sync pass completed")

	return res
}

// syncOne pushes a single transaction. Nothing is written back to the
// store unless the server accepted the record: a transaction must never be
// persisted claiming attachments it did not upload.
func (e *Engine) syncOne(ctx context.Context, txn domain.Transaction) error {
	payload := txn

	if len(txn.Attachments) > 0 {
		resolved := make([]string, 0, len(txn.Attachments))
		for _, ref := range txn.Attachments {
			url, err := e.uploader.Upload(ctx, ref)
			if err != nil {
				return fmt.Errorf("upload attachment %q: %w", ref, err)
			}
			resolved = append(resolved, url)
		}
		payload.Attachments = resolved
	}

	accepted, err := e.poster.PostTransaction(ctx, payload)
	if err != nil {
		return fmt.Errorf("post transaction: %w", err)
	}

	// One update, keyed by the original local id. The server id, when
	// different, supersedes the local temporary id as part of this same
	// patch; if the server returned its own attachment list it is
	// authoritative over the locally resolved one.
	patch := store.Patch{IsSynced: store.BoolPtr(true)}
	if accepted.ID != "" && accepted.ID != txn.ID {
		patch.ID = store.StrPtr(accepted.ID)
	}
	if accepted.Attachments != nil {
		patch.Attachments = accepted.Attachments
	}

	if _, err := e.ledger.Update(ctx, txn.ID, patch); err != nil {
		return fmt.Errorf("apply sync patch: %w", err)
	}
	return nil
}
