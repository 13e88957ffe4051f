// Package remote is the thin request layer against the tracker backend:
// posting transactions, uploading attachments and fetching categories.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hishabkhata/hishab/internal/domain"
)

// DefaultBaseURL points at a locally running backend.
const DefaultBaseURL = "http://127.0.0.1:8000"

const defaultTimeout = 10 * time.Second

// Client talks to the remote tracker API. The bearer token is optional;
// when empty, requests go out unauthenticated and any server rejection
// surfaces as a per-request failure.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Accepted is the server's acknowledgement of a created transaction.
// ID is the server-assigned id (may equal the local one). Attachments,
// when non-nil, is the server's authoritative attachment URL list.
type Accepted struct {
	ID          string
	Attachments []string
}

// serverTransaction is the subset of the response record the sync engine
// consumes.
type serverTransaction struct {
	ID          string   `json:"id"`
	Attachments []string `json:"attachments"`
}

// PostTransaction sends one transaction to POST /api/transactions. A
// response is accepted only if it carries a top-level id or a nested data
// object; every other shape, and any transport failure, is an error for
// this single transaction.
func (c *Client) PostTransaction(ctx context.Context, txn domain.Transaction) (*Accepted, error) {
	body, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post transaction: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		ID          string             `json:"id"`
		Attachments []string           `json:"attachments"`
		Data        *serverTransaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	switch {
	case envelope.Data != nil:
		return &Accepted{ID: envelope.Data.ID, Attachments: envelope.Data.Attachments}, nil
	case envelope.ID != "":
		return &Accepted{ID: envelope.ID, Attachments: envelope.Attachments}, nil
	default:
		return nil, fmt.Errorf("server did not accept transaction (status %d)", resp.StatusCode)
	}
}

// BulkCreate sends many transactions to POST /api/transactions/bulk. The
// response body is implementation-defined and not consumed here; a non-2xx
// status is the only failure signal.
func (c *Client) BulkCreate(ctx context.Context, txns []domain.Transaction) error {
	body, err := json.Marshal(map[string][]domain.Transaction{"transactions": txns})
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transactions/bulk", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bulk create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("bulk create: server returned status %d", resp.StatusCode)
	}
	return nil
}

// GetCategories fetches the category list from GET /api/categories.
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer resp.Body.Close()

	var categories []domain.Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("decode categories (status %d): %w", resp.StatusCode, err)
	}
	return categories, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
