package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/treasurehunt/internal/hunt"
)

// AnswerRequest carries a passcode, challenge answer or riddle answer.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

type InputRequest struct {
	Text string `json:"text"`
}

type HintResponse struct {
	Hint string `json:"hint"`
}

type transition func(r *http.Request, s *hunt.Session) (hunt.Event, error)

// handleTransition runs t against the session named in the URL and replies
// with the updated session view.
func handleTransition(h *Hunts, t transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s, _, err := h.Apply(r.Context(), id, func(s *hunt.Session) (hunt.Event, error) {
			return t(r, s)
		})
		if err != nil {
			writeHuntError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newSessionResponse(id, s))
	}
}

// withAnswer decodes an AnswerRequest before calling submit. A bad body is
// reported as errBadRequest so nothing is applied.
func withAnswer(submit func(s *hunt.Session, answer string) (hunt.Event, error)) transition {
	return func(r *http.Request, s *hunt.Session) (hunt.Event, error) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			return hunt.Event{}, errBadRequest
		}
		return submit(s, req.Answer)
	}
}

func handleStart(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(_ *http.Request, s *hunt.Session) (hunt.Event, error) {
		return s.Start()
	})
}

func handlePasscode(h *Hunts) http.HandlerFunc {
	return handleTransition(h, withAnswer((*hunt.Session).SubmitPasscode))
}

func handleChallenge(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(r *http.Request, s *hunt.Session) (hunt.Event, error) {
		i, err := indexParam(r)
		if err != nil {
			return hunt.Event{}, err
		}
		return withAnswer(func(s *hunt.Session, answer string) (hunt.Event, error) {
			return s.SubmitChallengeAnswer(i, answer)
		})(r, s)
	})
}

func handleRiddle(h *Hunts) http.HandlerFunc {
	return handleTransition(h, withAnswer((*hunt.Session).SubmitRiddleAnswer))
}

func handleAdvance(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(_ *http.Request, s *hunt.Session) (hunt.Event, error) {
		return s.Advance()
	})
}

func handleFinal(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(_ *http.Request, s *hunt.Session) (hunt.Event, error) {
		return s.CompleteFinalAction()
	})
}

func handleSetInput(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(r *http.Request, s *hunt.Session) (hunt.Event, error) {
		var req InputRequest
		if err := readJSON(r, &req); err != nil {
			return hunt.Event{}, errBadRequest
		}
		s.SetInput(req.Text)
		return hunt.Event{}, nil
	})
}

func handleClearInput(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(_ *http.Request, s *hunt.Session) (hunt.Event, error) {
		s.ClearInput()
		return hunt.Event{}, nil
	})
}

func handleTapLetter(h *Hunts) http.HandlerFunc {
	return handleTransition(h, func(r *http.Request, s *hunt.Session) (hunt.Event, error) {
		i, err := indexParam(r)
		if err != nil {
			return hunt.Event{}, err
		}
		_, err = s.TapLetter(i)
		return hunt.Event{}, err
	})
}

func handleChallengeHint(h *Hunts) http.HandlerFunc {
	return handleHint(h, func(r *http.Request, s *hunt.Session) (string, error) {
		i, err := indexParam(r)
		if err != nil {
			return "", err
		}
		return s.ChallengeHint(i)
	})
}

func handleRiddleHint(h *Hunts) http.HandlerFunc {
	return handleHint(h, func(_ *http.Request, s *hunt.Session) (string, error) {
		return s.RiddleHint()
	})
}

func handleHint(h *Hunts, get func(*http.Request, *hunt.Session) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var hint string
		_, _, err := h.Apply(r.Context(), chi.URLParam(r, "id"), func(s *hunt.Session) (hunt.Event, error) {
			var err error
			hint, err = get(r, s)
			return hunt.Event{}, err
		})
		if err != nil {
			writeHuntError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, HintResponse{Hint: hint})
	}
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, errBadRequest
	}
	return i, nil
}
