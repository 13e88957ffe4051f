// Package domain holds the ledger data model shared by the local store,
// the sync engine and the HTTP surfaces.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	// TypeIncome is money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense is money going out.
	TypeExpense TransactionType = "expense"
)

// DefaultCurrency is used when a transaction is created without one.
const DefaultCurrency = "BDT"

// Transaction is one ledger record. Amount always carries the absolute
// value entered; the sign lives in Type. Attachments hold local file
// references until a sync pass resolves them to remote URLs. The JSON
// field names are the persisted storage format and the wire format, so
// they must not change.
type Transaction struct {
	ID              string          `json:"id"`
	Type            TransactionType `json:"type"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
	CategoryID      string          `json:"categoryId,omitempty"`
	PaymentMethodID string          `json:"paymentMethodId,omitempty"`
	Date            string          `json:"date"`
	Note            string          `json:"note,omitempty"`
	Attachments     []string        `json:"attachments,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	IsSynced        bool            `json:"isSynced"`
}

// NewTransactionID generates a locally unique transaction id: a millisecond
// timestamp plus a random suffix. The id is temporary - the server may
// assign its own id on sync, which then replaces this one in the store.
func NewTransactionID() string {
	return fmt.Sprintf("txn_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Category is static reference data for labelling transactions. Categories
// are seeded, not synced; transactions reference them by id without the
// store validating existence.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // income, expense or both
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"createdAt"`
}
