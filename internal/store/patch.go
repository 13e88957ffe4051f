package store

import "github.com/hishabkhata/hishab/internal/domain"

// Patch is a partial transaction for Update. Nil fields leave the stored
// value unchanged. ID carries a server-assigned id replacing the local one
// after a successful sync.
type Patch struct {
	ID              *string
	Type            *domain.TransactionType
	Amount          *float64
	Currency        *string
	CategoryID      *string
	PaymentMethodID *string
	Date            *string
	Note            *string
	Attachments     []string
	IsSynced        *bool
}

func (p Patch) apply(t domain.Transaction) domain.Transaction {
	if p.ID != nil {
		t.ID = *p.ID
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Currency != nil {
		t.Currency = *p.Currency
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.PaymentMethodID != nil {
		t.PaymentMethodID = *p.PaymentMethodID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	if p.Attachments != nil {
		t.Attachments = p.Attachments
	}
	if p.IsSynced != nil {
		t.IsSynced = *p.IsSynced
	}
	return t
}

// StrPtr is a convenience for building patches.
func StrPtr(s string) *string { return &s }

// BoolPtr is a convenience for building patches.
func BoolPtr(b bool) *bool { return &b }
