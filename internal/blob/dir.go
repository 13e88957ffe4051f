package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DirStorage keeps attachments on the local filesystem and serves them
// back through the dev server's /uploads/ route.
type DirStorage struct {
	dir     string
	baseURL string
}

// NewDirStorage creates directory-backed storage rooted at dir. Returned
// URLs are baseURL + "/uploads/" + object name.
func NewDirStorage(dir, baseURL string) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &DirStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the directory files are written into, for serving them back.
func (s *DirStorage) Dir() string {
	return s.dir
}

// Save implements the Storage interface.
func (s *DirStorage) Save(ctx context.Context, objectName string, r io.Reader) (string, error) {
	// Object names come from the handler, not the client, but flattening
	// them keeps a crafted name inside the directory anyway.
	name := filepath.Base(objectName)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create %q: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("finalize %q: %w", name, err)
	}
	return s.baseURL + "/uploads/" + name, nil
}

// Ensure DirStorage implements Storage interface.
var _ Storage = (*DirStorage)(nil)
