// Package store implements the durable local transaction ledger on top of
// the kv durable map. Every mutation is a full read-modify-write of the
// whole collection under a single key: serialization is all-or-nothing, so
// readers never see a partially written list. That caps practical
// collection size but the kv Set is atomic per key, which is the whole
// consistency story.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/kv"
	"github.com/hishabkhata/hishab/internal/logger"
)

// StorageKey is the single durable key holding the JSON-encoded
// transaction array, most-recent-first.
const StorageKey = "hk_transactions_v1"

// ErrNotFound is returned by Update when no transaction has the given id.
var ErrNotFound = errors.New("store: transaction not found")

// isoMillis matches the timestamp format the original records were written
// with, so old and new entries stay uniform.
const isoMillis = "2006-01-02T15:04:05.000Z"

// TransactionStore is the durable local ledger of transactions.
type TransactionStore struct {
	kv       kv.Store
	currency string
	now      func() time.Time
}

// New creates a ledger over the given durable map. Transactions created
// without a currency default to currency.
func New(kvs kv.Store, currency string) *TransactionStore {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &TransactionStore{kv: kvs, currency: currency, now: time.Now}
}

// ListAll returns all transactions, most-recently-created first. It fails
// soft: an unreadable or corrupt durable map yields an empty list with a
// logged warning, never an error, so a broken ledger does not take the
// caller down with it.
func (s *TransactionStore) ListAll(ctx context.Context) []domain.Transaction {
	log := logger.FromContext(ctx)

	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn().Err(err).Str("key", StorageKey).Msg("Failed to read transactions, treating ledger as empty")
		}
		return nil
	}

	var list []domain.Transaction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("Corrupt transaction data, treating ledger as empty")
		return nil
	}
	return list
}

// ListUnsynced returns the transactions still waiting to be pushed to the
// server, in the same order as ListAll.
func (s *TransactionStore) ListUnsynced(ctx context.Context) []domain.Transaction {
	var unsynced []domain.Transaction
	for _, t := range s.ListAll(ctx) {
		if !t.IsSynced {
			unsynced = append(unsynced, t)
		}
	}
	return unsynced
}

// Create materializes a transaction from partial input, filling every
// required field with a default: a fresh local id, the current time for
// date and bookkeeping timestamps, the store's default currency. New
// records are always unsynced and are prepended to the list.
func (s *TransactionStore) Create(ctx context.Context, partial domain.Transaction) domain.Transaction {
	now := s.now().UTC().Format(isoMillis)

	txn := partial
	if txn.ID == "" {
		txn.ID = domain.NewTransactionID()
	}
	if txn.Type == "" {
		txn.Type = domain.TypeExpense
	}
	if txn.Currency == "" {
		txn.Currency = s.currency
	}
	if txn.Date == "" {
		txn.Date = now
	}
	if txn.CreatedAt == "" {
		txn.CreatedAt = now
	}
	if txn.UpdatedAt == "" {
		txn.UpdatedAt = now
	}
	txn.IsSynced = false

	list := append([]domain.Transaction{txn}, s.ListAll(ctx)...)
	s.save(ctx, list)
	return txn
}

// Update merges patch onto the transaction with the given id and persists
// the list. UpdatedAt is refreshed to now regardless of the patch. Returns
// ErrNotFound when the id does not exist; the stored data is untouched in
// that case.
func (s *TransactionStore) Update(ctx context.Context, id string, patch Patch) (*domain.Transaction, error) {
	list := s.ListAll(ctx)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		merged := patch.apply(list[i])
		merged.UpdatedAt = s.now().UTC().Format(isoMillis)
		list[i] = merged
		s.save(ctx, list)
		return &merged, nil
	}
	return nil, ErrNotFound
}

// Clear removes every transaction. Used for resets and tests only.
func (s *TransactionStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, StorageKey)
}

// save persists the whole list under the storage key. Write failures are
// logged and swallowed, matching the read side: the ledger degrades, it
// does not crash the app.
func (s *TransactionStore) save(ctx context.Context, list []domain.Transaction) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(list)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to serialize transactions")
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("Failed to persist transactions")
	}
}
