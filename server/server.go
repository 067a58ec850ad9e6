// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes a loaded catalog over HTTP: query, suggestion, and
// health endpoints with JSON responses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/poiesic/taxonit"
	"github.com/poiesic/taxonit/search"
)

// Server serves search requests against one catalog.
type Server struct {
	cfg        *Config
	catalog    *taxonit.Catalog
	logger     *slog.Logger
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a server over a loaded catalog.
func New(cfg *Config, catalog *taxonit.Catalog, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Handler returns the route table. Exposed for tests and for embedding the
// server under an outer mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /suggest", s.handleSuggest)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.cfg.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

type resultPayload struct {
	EntryID   string  `json:"entryId"`
	Notation  string  `json:"notation,omitempty"`
	Title     string  `json:"title,omitempty"`
	Score     float64 `json:"score"`
	MatchType string  `json:"matchType"`
}

type searchResponse struct {
	Query     string          `json:"query"`
	QueryType string          `json:"queryType"`
	Count     int             `json:"count"`
	Results   []resultPayload `json:"results"`
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type healthResponse struct {
	Status string        `json:"status"`
	Stats  taxonit.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	limit, ok := s.parseLimit(w, r, s.cfg.MaxResults)
	if !ok {
		return
	}

	results := s.catalog.Search(query, limit)
	if table := r.URL.Query().Get("table"); table != "" {
		results = s.catalog.FilterByTable(results, table)
	}

	payload := make([]resultPayload, 0, len(results))
	for _, result := range results {
		item := resultPayload{
			EntryID:   result.EntryID,
			Score:     result.Score,
			MatchType: result.MatchType,
		}
		if entry := s.catalog.Entry(result.EntryID); entry != nil {
			item.Notation = entry.ResolvedNotation()
			item.Title = entry.ResolvedTitle()
		}
		payload = append(payload, item)
	}

	s.writeJSON(w, http.StatusOK, searchResponse{
		Query:     query,
		QueryType: search.DetectQueryType(query).String(),
		Count:     len(payload),
		Results:   payload,
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	limit, ok := s.parseLimit(w, r, s.cfg.SuggestLimit)
	if !ok {
		return
	}

	suggestions := s.catalog.Suggest(query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	s.writeJSON(w, http.StatusOK, suggestResponse{
		Query:       query,
		Suggestions: suggestions,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Stats:  s.catalog.Stats(),
	})
}

// parseLimit reads the optional limit parameter and clamps it to the
// configured ceiling. Writes the error response itself on bad input.
func (s *Server) parseLimit(w http.ResponseWriter, r *http.Request, ceiling int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return ceiling, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	if limit > ceiling {
		limit = ceiling
	}
	return limit, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
