package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hishabkhata/hishab/internal/blob"
	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/logger"
)

func newTestServer(t *testing.T, token string) (*Server, *httptest.Server) {
	t.Helper()
	storage, err := blob.NewDirStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewDirStorage failed: %v", err)
	}
	s := New(storage, token, logger.NewWithWriter(io.Discard))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestCreateTransaction(t *testing.T) {
	s, ts := newTestServer(t, "")

	body := `{"id":"txn_1_abc","type":"expense","amount":100,"date":"2025-06-01","createdAt":"2025-06-01","isSynced":false}`
	resp, err := http.Post(ts.URL+"/api/transactions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var envelope struct {
		Data domain.Transaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.HasPrefix(envelope.Data.ID, "stx_") {
		t.Errorf("server id = %q, want stx_ prefix", envelope.Data.ID)
	}
	if envelope.Data.ID == "txn_1_abc" {
		t.Error("server must assign its own id")
	}

	stored := s.Transactions()
	if len(stored) != 1 || stored[0].Amount != 100 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"bad type", `{"type":"transfer","amount":1}`, http.StatusUnprocessableEntity},
		{"negative amount", `{"type":"expense","amount":-5}`, http.StatusUnprocessableEntity},
	}

	_, ts := newTestServer(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/transactions", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestBulkCreate(t *testing.T) {
	s, ts := newTestServer(t, "")

	body := `{"transactions":[{"type":"expense","amount":1},{"type":"income","amount":2}]}`
	resp, err := http.Post(ts.URL+"/api/transactions/bulk", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result["created"] != 2 {
		t.Errorf("created = %d, want 2", result["created"])
	}
	if len(s.Transactions()) != 2 {
		t.Errorf("stored %d records, want 2", len(s.Transactions()))
	}
}

func TestListCategories(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/categories")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var categories []domain.Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(categories) != len(domain.DefaultCategories) {
		t.Errorf("got %d categories, want %d", len(categories), len(domain.DefaultCategories))
	}
}

func TestUploadAttachment(t *testing.T) {
	_, ts := newTestServer(t, "")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "receipt.jpg")
	if err != nil {
		t.Fatalf("form failed: %v", err)
	}
	part.Write([]byte("jpeg bytes"))
	form.Close()

	resp, err := http.Post(ts.URL+"/api/uploads", form.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.Contains(result.URL, "/uploads/") || !strings.HasSuffix(result.URL, "-receipt.jpg") {
		t.Errorf("url = %q", result.URL)
	}
}

func TestUploadAttachment_MissingFile(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/api/uploads", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestBearerAuth(t *testing.T) {
	_, ts := newTestServer(t, "sekret")

	// No token
	resp, err := http.Get(ts.URL + "/api/categories")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", resp.StatusCode)
	}

	// Correct token
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/categories", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status with token = %d, want 200", resp.StatusCode)
	}

	// Health stays open
	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}
