package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// IsRemoteURL reports whether an attachment reference is already a remote
// URL and therefore needs no upload.
func IsRemoteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Upload resolves an attachment reference to a durable remote URL.
// References that are already http(s) URLs pass through unchanged with no
// network call - this is what makes re-running a sync pass over a
// partially uploaded attachment list safe. Anything else is treated as a
// local file and sent as multipart form data to POST /api/uploads.
func (c *Client) Upload(ctx context.Context, localRef string) (string, error) {
	if IsRemoteURL(localRef) {
		return localRef, nil
	}

	path := strings.TrimPrefix(localRef, "file://")
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open attachment %q: %w", localRef, err)
	}
	defer f.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read attachment %q: %w", localRef, err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads", &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload attachment %q: %w", localRef, err)
	}
	defer resp.Body.Close()

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response (status %d): %w", resp.StatusCode, err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload response missing url (status %d)", resp.StatusCode)
	}
	return result.URL, nil
}
