package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Global Village API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB, deps.Redis))

	r.Route("/api", func(r chi.Router) {
		r.Get("/continents", handleContinents())

		// Country cards: the filterable grid and the detail overlay.
		r.Get("/countries", handleCountryList(deps.Source))
		r.Get("/countries/{name}", handleCountryDetail(deps.Source))

		// Curated culture dataset plus the legacy registration hook.
		r.Get("/cultures", handleCultureList(deps.Cultures))
		r.Post("/cultures/register", handleCultureRegister(deps.Cultures, logger))
		r.Get("/cultures/{name}", handleCultureDetail(deps.Cultures))

		// Guess The Flag sessions.
		r.Route("/quiz", func(r chi.Router) {
			r.Post("/", handleQuizStart(deps.Source, deps.Sessions))
			r.Get("/{token}", handleQuizState(deps.Sessions))
			r.Post("/{token}/answer", handleQuizAnswer(deps.Sessions, broker))
			r.Post("/{token}/next", handleQuizNext(deps.Source, deps.Sessions, broker))
			r.Post("/{token}/restart", handleQuizRestart(deps.Source, deps.Sessions))
			r.Get("/{token}/events", handleQuizEvents(deps.Sessions, broker))
		})
	})

	if deps.SiteDir != "" {
		if info, err := os.Stat(deps.SiteDir); err == nil && info.IsDir() {
			logger.Info("serving static site", "dir", deps.SiteDir)
			r.NotFound(handleSite(deps.SiteDir))
		}
	}
}
