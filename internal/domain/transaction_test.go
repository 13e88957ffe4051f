package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTransactionID(t *testing.T) {
	a := NewTransactionID()
	b := NewTransactionID()

	if !strings.HasPrefix(a, "txn_") {
		t.Errorf("id %q should have txn_ prefix", a)
	}
	if a == b {
		t.Errorf("consecutive ids should differ, both were %q", a)
	}
}

func TestTransactionJSONFieldNames(t *testing.T) {
	txn := Transaction{
		ID:              "t1",
		Type:            TypeExpense,
		Amount:          12.5,
		Currency:        "BDT",
		CategoryID:      "food",
		PaymentMethodID: "cash",
		Date:            "2025-06-01T00:00:00Z",
		Note:            "lunch",
		Attachments:     []string{"file:///a.jpg"},
		CreatedAt:       "2025-06-01T00:00:00Z",
		UpdatedAt:       "2025-06-01T00:00:00Z",
	}

	data, err := json.Marshal(txn)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// The storage format depends on these exact names.
	for _, name := range []string{
		"id", "type", "amount", "currency", "categoryId", "paymentMethodId",
		"date", "note", "attachments", "createdAt", "updatedAt", "isSynced",
	} {
		if _, ok := fields[name]; !ok {
			t.Errorf("serialized transaction missing field %q (got %s)", name, data)
		}
	}
	if len(fields) != 12 {
		t.Errorf("serialized transaction has %d fields, want 12: %s", len(fields), data)
	}
}

func TestTransactionJSON_IsSyncedAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(Transaction{ID: "t1", Type: TypeIncome, Date: "d", CreatedAt: "c"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"isSynced":false`) {
		t.Errorf("isSynced must serialize even when false, got %s", data)
	}
}

func TestDefaultCategories(t *testing.T) {
	if len(DefaultCategories) == 0 {
		t.Fatal("DefaultCategories is empty")
	}

	seen := map[string]bool{}
	for _, c := range DefaultCategories {
		if c.ID == "" || c.Name == "" {
			t.Errorf("category %+v missing id or name", c)
		}
		if seen[c.ID] {
			t.Errorf("duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
		switch c.Type {
		case "income", "expense", "both":
		default:
			t.Errorf("category %q has invalid type %q", c.ID, c.Type)
		}
	}
	if !seen["uncategorized"] {
		t.Error("seeded set must include the uncategorized fallback")
	}
}
