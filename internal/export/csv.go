// Package export renders the ledger as CSV for sharing.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hishabkhata/hishab/internal/domain"
)

var header = []string{
	"id", "type", "amount", "currency", "categoryId",
	"paymentMethodId", "date", "note", "attachments", "createdAt",
}

// WriteCSV writes the given transactions as CSV, one row per record in the
// order given. Attachments are joined with ";" into a single column.
func WriteCSV(w io.Writer, rows []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			string(r.Type),
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.Currency,
			r.CategoryID,
			r.PaymentMethodID,
			r.Date,
			r.Note,
			strings.Join(r.Attachments, ";"),
			r.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
