package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/treasurehunt/internal/hunt"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each dependency to "ok" or "error".
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type indexPath struct {
	ID    string `path:"id"`
	Index int    `path:"index"`
}

type answerInput struct {
	ID     string `path:"id"`
	Answer string `json:"answer"`
}

type challengeAnswerInput struct {
	ID     string `path:"id"`
	Index  int    `path:"index"`
	Answer string `json:"answer"`
}

type setInputInput struct {
	ID   string `path:"id"`
	Text string `json:"text"`
}

type operation struct {
	method, path, summary, description string
	req                                any
	resp                               any
	status                             int
	contentType                        string
	errors                             []int
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Treasure Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the proposal treasure hunt.")

	transition := []int{http.StatusNotFound, http.StatusConflict, http.StatusGone}
	submission := []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusGone, http.StatusUnprocessableEntity}

	ops := []operation{
		{method: http.MethodGet, path: "/healthz", summary: "Health check",
			description: "Returns the health status of backend dependencies.",
			resp:        HealthResponse{}, errors: []int{http.StatusServiceUnavailable}},
		{method: http.MethodGet, path: "/api/content", summary: "Hunt introduction",
			description: "Title, story and location count of the table new sessions get. No answers.",
			resp:        ContentResponse{}},
		{method: http.MethodPost, path: "/api/sessions", summary: "Create session",
			description: "Creates a session bound to the current content table. The hunt is not started yet.",
			resp:        SessionResponse{}, status: http.StatusCreated},
		{method: http.MethodGet, path: "/api/sessions/{id}", summary: "Get session",
			description: "Phase, flags, current location, revealed map, input buffer and active notice.",
			req:         sessionPath{}, resp: SessionResponse{}, errors: []int{http.StatusNotFound, http.StatusGone}},
		{method: http.MethodPost, path: "/api/sessions/{id}/start", summary: "Start hunt",
			description: "Starts the hunt and draws the opening map.",
			req:         sessionPath{}, resp: SessionResponse{}, errors: transition},
		{method: http.MethodPost, path: "/api/sessions/{id}/passcode", summary: "Submit passcode",
			description: "Unlocks the current location. Matching ignores case and surrounding whitespace.",
			req:         answerInput{}, resp: SessionResponse{}, errors: submission},
		{method: http.MethodPost, path: "/api/sessions/{id}/challenges/{index}", summary: "Submit challenge answer",
			description: "Completes a challenge. Completion challenges accept any answer.",
			req:         challengeAnswerInput{}, resp: SessionResponse{}, errors: submission},
		{method: http.MethodGet, path: "/api/sessions/{id}/challenges/{index}/hint", summary: "Challenge hint",
			description: "Returns the hint and posts it as a notice.",
			req:         indexPath{}, resp: HintResponse{}, errors: transition},
		{method: http.MethodPost, path: "/api/sessions/{id}/riddle", summary: "Submit riddle answer",
			description: "Solves the riddle and reveals the next location.",
			req:         answerInput{}, resp: SessionResponse{}, errors: submission},
		{method: http.MethodGet, path: "/api/sessions/{id}/riddle/hint", summary: "Riddle hint",
			description: "Returns the riddle hint and posts it as a notice.",
			req:         sessionPath{}, resp: HintResponse{}, errors: transition},
		{method: http.MethodPost, path: "/api/sessions/{id}/advance", summary: "Advance",
			description: "Moves to the revealed next location and extends the map toward it.",
			req:         sessionPath{}, resp: SessionResponse{}, errors: transition},
		{method: http.MethodPost, path: "/api/sessions/{id}/final", summary: "Complete hunt",
			description: "Finishes the hunt at the final location.",
			req:         sessionPath{}, resp: SessionResponse{}, errors: transition},
		{method: http.MethodPut, path: "/api/sessions/{id}/input", summary: "Set input",
			description: "Replaces the input buffer.",
			req:         setInputInput{}, resp: SessionResponse{}, errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodDelete, path: "/api/sessions/{id}/input", summary: "Clear input",
			description: "Empties the input buffer.",
			req:         sessionPath{}, resp: SessionResponse{}, errors: []int{http.StatusNotFound}},
		{method: http.MethodPost, path: "/api/sessions/{id}/input/letters/{index}", summary: "Tap letter",
			description: "Appends a tile from the riddle's letter bank to the input buffer.",
			req:         indexPath{}, resp: SessionResponse{}, errors: transition},
		{method: http.MethodGet, path: "/api/sessions/{id}/map.txt", summary: "Text map",
			description: "The revealed map, one glyph per cell.",
			req:         sessionPath{}, contentType: "text/plain", errors: transition},
		{method: http.MethodGet, path: "/api/sessions/{id}/map.pdf", summary: "PDF map",
			description: "The revealed map as a printable PDF.",
			req:         sessionPath{}, contentType: "application/pdf", errors: transition},
		{method: http.MethodGet, path: "/api/sessions/{id}/events", summary: "SSE event stream",
			description: "Server-Sent Events stream of session changes.",
			req:         sessionPath{}, contentType: "text/event-stream", errors: []int{http.StatusNotFound}},
		{method: http.MethodGet, path: "/api/sessions/{id}/ws", summary: "WebSocket event stream",
			description: "Upgrades to a WebSocket that carries the same events as the SSE stream.",
			req:         sessionPath{}, status: http.StatusSwitchingProtocols, contentType: "application/json",
			errors: []int{http.StatusNotFound}},
		{method: http.MethodGet, path: "/api/admin/content", summary: "Get content table",
			description: "Full current content table, answers included. Requires basic auth.",
			resp:        hunt.Content{}, errors: []int{http.StatusUnauthorized}},
		{method: http.MethodPut, path: "/api/admin/content", summary: "Replace content table",
			description: "Publishes a YAML or JSON content table for new sessions. Requires basic auth.",
			resp:        AdminContentResponse{}, errors: []int{http.StatusBadRequest, http.StatusUnauthorized}},
	}

	for _, op := range ops {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		oc.SetDescription(op.description)
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		status := op.status
		if status == 0 {
			status = http.StatusOK
		}
		if op.contentType != "" {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status), openapi.WithContentType(op.contentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status))
		}
		for _, code := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(code))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
