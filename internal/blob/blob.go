// Package blob stores uploaded attachment files for the dev server and
// hands back the durable URL clients keep in their ledgers.
package blob

import (
	"context"
	"io"
)

// Storage persists an uploaded attachment and returns its public URL.
type Storage interface {
	Save(ctx context.Context, objectName string, r io.Reader) (string, error)
}
