package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStorage stores attachments in a Google Cloud Storage bucket. It
// assumes Application Default Credentials are configured and that the
// bucket allows public reads, so the returned URL is directly fetchable.
type GCSStorage struct {
	bucket string
}

// NewGCSStorage creates GCS-backed storage for the given bucket.
func NewGCSStorage(bucket string) *GCSStorage {
	return &GCSStorage{bucket: bucket}
}

// Save implements the Storage interface.
func (s *GCSStorage) Save(ctx context.Context, objectName string, r io.Reader) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

// Ensure GCSStorage implements Storage interface.
var _ Storage = (*GCSStorage)(nil)
