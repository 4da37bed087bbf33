package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	hunts := NewHunts(logger, deps.Library, deps.Sessions, deps.Broker, deps.Seed, deps.SessionOptions...)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Treasure Hunt API", "/openapi.json", "/docs"))

	r.Get("/api/content", handleContent(deps.Library))

	r.Post("/api/sessions", handleCreateSession(hunts, logger))
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", handleGetSession(hunts))
		r.Post("/start", handleStart(hunts))
		r.Post("/passcode", handlePasscode(hunts))
		r.Post("/challenges/{index}", handleChallenge(hunts))
		r.Get("/challenges/{index}/hint", handleChallengeHint(hunts))
		r.Post("/riddle", handleRiddle(hunts))
		r.Get("/riddle/hint", handleRiddleHint(hunts))
		r.Post("/advance", handleAdvance(hunts))
		r.Post("/final", handleFinal(hunts))
		r.Put("/input", handleSetInput(hunts))
		r.Delete("/input", handleClearInput(hunts))
		r.Post("/input/letters/{index}", handleTapLetter(hunts))
		r.Get("/map.txt", handleMapText(hunts))
		r.Get("/map.pdf", handleMapPDF(hunts, logger))
		r.Get("/events", handleEvents(hunts, deps.Broker))
		r.Get("/ws", handleWS(hunts, deps.Broker, logger))
	})

	if deps.AdminPasswordHash != "" {
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(adminAuthMiddleware(deps.AdminPasswordHash))
			r.Get("/content", handleAdminGetContent(deps.Library))
			r.Put("/content", handleAdminPutContent(deps.Library, logger))
		})
	} else {
		logger.Info("admin routes disabled, no password hash configured")
	}

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
