package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/treasurehunt/internal/hunt"
	"github.com/playperu/treasurehunt/internal/mapexport"
)

func handleMapText(h *Hunts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeHuntError(w, err)
			return
		}
		if !s.Started() {
			writeHuntError(w, hunt.ErrNotStarted)
			return
		}
		m := s.Map()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(m.String()))
	}
}

func handleMapPDF(h *Hunts, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeHuntError(w, err)
			return
		}
		if !s.Started() {
			writeHuntError(w, hunt.ErrNotStarted)
			return
		}

		c := s.Content()
		places := make([]mapexport.Place, 0, len(c.Locations))
		for i, loc := range c.Locations {
			places = append(places, mapexport.Place{Name: loc.Name, Marker: loc.Map, Current: i == s.Index()})
		}

		data, err := mapexport.Render(c.Title, s.Map(), places)
		if err != nil {
			logger.Error("rendering map pdf", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="treasure-map.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
