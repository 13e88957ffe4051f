// Package server is a development implementation of the tracker backend
// the sync engine pushes to: it accepts transaction creates (assigning
// server-side ids), attachment uploads and category reads. It exists so
// the client can be developed and integration-tested without the real
// backend; records live in memory only.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hishabkhata/hishab/internal/blob"
	"github.com/hishabkhata/hishab/internal/domain"
)

// Server holds the dev backend's state.
type Server struct {
	storage blob.Storage
	token   string
	log     zerolog.Logger

	mu      sync.Mutex
	records []domain.Transaction
}

// New creates a dev server storing attachments in the given blob storage.
// A non-empty token makes every endpoint require it as a bearer token.
func New(storage blob.Storage, token string, log zerolog.Logger) *Server {
	return &Server{storage: storage, token: token, log: log}
}

// Router builds the HTTP routing table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.log))
	r.Use(Recovery(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(BearerAuth(s.token))
		r.Get("/categories", s.listCategories)
		r.Get("/transactions", s.listTransactions)
		r.Post("/transactions", s.createTransaction)
		r.Post("/transactions/bulk", s.bulkCreateTransactions)
		r.Post("/uploads", s.uploadAttachment)
	})

	// Serve locally stored attachments back at the URLs Save returned.
	if dir, ok := s.storage.(*blob.DirStorage); ok {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir.Dir()))))
	}

	return r
}

// createTransaction handles POST /api/transactions. The server is the id
// authority: it assigns its own id to every accepted record and returns
// the stored record under "data", which is what tells the client to
// replace its temporary local id.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var txn domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if txn.Type != domain.TypeIncome && txn.Type != domain.TypeExpense {
		WriteError(w, http.StatusUnprocessableEntity, "type must be income or expense")
		return
	}
	if txn.Amount < 0 {
		WriteError(w, http.StatusUnprocessableEntity, "amount must be non-negative")
		return
	}

	txn.ID = "stx_" + uuid.NewString()
	txn.IsSynced = true

	s.mu.Lock()
	s.records = append(s.records, txn)
	s.mu.Unlock()

	s.log.Info().
		Str("transaction_id", txn.ID).
		Float64("amount", txn.Amount).
		Msg("Stored transaction")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{"data": txn})
}

// bulkCreateTransactions handles POST /api/transactions/bulk.
func (s *Server) bulkCreateTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	for i := range req.Transactions {
		req.Transactions[i].ID = "stx_" + uuid.NewString()
		req.Transactions[i].IsSynced = true
		s.records = append(s.records, req.Transactions[i])
	}
	s.mu.Unlock()

	WriteJSON(w, http.StatusCreated, map[string]int{"created": len(req.Transactions)})
}

// listTransactions handles GET /api/transactions.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]domain.Transaction, len(s.records))
	copy(list, s.records)
	s.mu.Unlock()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": list,
		"count":        len(list),
	})
}

// listCategories handles GET /api/categories with the seeded set.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, domain.DefaultCategories)
}

// uploadAttachment handles POST /api/uploads (multipart, field "file").
func (s *Server) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	f, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer f.Close()

	objectName := uuid.NewString() + "-" + header.Filename
	url, err := s.storage.Save(r.Context(), objectName, f)
	if err != nil {
		s.log.Error().Err(err).Str("object_name", objectName).Msg("Failed to store attachment")
		WriteError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	s.log.Info().Str("object_name", objectName).Str("url", url).Msg("Stored attachment")
	WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Transactions returns a copy of the accepted records, for tests.
func (s *Server) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]domain.Transaction, len(s.records))
	copy(list, s.records)
	return list
}
