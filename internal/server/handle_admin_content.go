package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/playperu/treasurehunt/internal/content"
)

const maxContentBytes = 1 << 20

// AdminContentResponse is returned after a content table is published.
type AdminContentResponse struct {
	Version       string `json:"version"`
	LocationCount int    `json:"locationCount"`
}

// handleAdminGetContent returns the full current table, answers included.
func handleAdminGetContent(library *content.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, library.Current())
	}
}

// handleAdminPutContent replaces the table used by new sessions. The body
// is YAML or JSON. Running sessions keep the table they started with.
func handleAdminPutContent(library *content.Library, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContentBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "content too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		c, err := content.Parse(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		library.Publish(c)
		logger.Info("content published", "version", c.Version, "locations", len(c.Locations))
		writeJSON(w, http.StatusOK, AdminContentResponse{Version: c.Version, LocationCount: len(c.Locations)})
	}
}
