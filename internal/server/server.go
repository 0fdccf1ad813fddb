// Package server exposes the read-only full-text search over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lyricspider/internal/constants"
	"lyricspider/internal/logger"
	"lyricspider/internal/store"
)

type Server struct {
	db  *store.DB
	log *logger.Logger
}

func New(db *store.DB, log *logger.Logger) *Server {
	return &Server{
		db:  db,
		log: log.WithComponent("server"),
	}
}

// Router builds the API routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/stats", s.handleStats)

	return r
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	open := r.URL.Query().Get("open")
	if open == "" {
		open = constants.DefaultHighlightOpen
	}
	clos := r.URL.Query().Get("close")
	if clos == "" {
		clos = constants.DefaultHighlightClose
	}

	matches, err := s.db.SearchLyrics(query, open, clos)
	if err != nil {
		s.log.Error("search failed", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"count":   len(matches),
		"results": matches,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.Stats()
	if err != nil {
		s.log.Error("stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
