package server

import (
	"errors"
	"net/http"

	"github.com/playperu/treasurehunt/internal/content"
	"github.com/playperu/treasurehunt/internal/hunt"
	"github.com/playperu/treasurehunt/internal/store"
)

var errBadRequest = errors.New("invalid request")

// writeHuntError maps session and domain errors onto HTTP statuses.
func writeHuntError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, content.ErrUnknownVersion):
		writeError(w, http.StatusGone, "session content is no longer available")
	case errors.Is(err, hunt.ErrMismatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, hunt.ErrNoSuchChallenge), errors.Is(err, hunt.ErrNoSuchLetter):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hunt.ErrNotStarted),
		errors.Is(err, hunt.ErrAlreadyStarted),
		errors.Is(err, hunt.ErrWrongPhase),
		errors.Is(err, hunt.ErrNoRiddle),
		errors.Is(err, hunt.ErrNoNextLocation):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
