package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/treasurehunt/internal/content"
)

func handleContent(library *content.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newContentResponse(library.Current()))
	}
}

func handleCreateSession(h *Hunts, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, s, err := h.Create(r.Context())
		if err != nil {
			logger.Error("creating session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, newSessionResponse(id, s))
	}
}

func handleGetSession(h *Hunts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s, err := h.Get(r.Context(), id)
		if err != nil {
			writeHuntError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(id, s))
	}
}
