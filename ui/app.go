package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hypotourney/adapters/excel"
	"hypotourney/app"
	"hypotourney/internal"
)

// App is the HTTP surface of the tournament engine. It wires the JSON API
// onto the application services; all game rules live below it.
type App struct {
	router      *chi.Mux
	tournaments *app.TournamentService
	analysis    *app.AnalysisService
	debrief     *excel.DebriefWriter
	exportDir   string
	log         *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	ExportDir string
}

// NewApp creates the HTTP application
func NewApp(config Config, tournaments *app.TournamentService, analysis *app.AnalysisService, log *internal.Logger) *App {
	a := &App{
		router:      chi.NewRouter(),
		tournaments: tournaments,
		analysis:    analysis,
		debrief:     excel.NewDebriefWriter(),
		exportDir:   config.ExportDir,
		log:         log,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router exposes the configured handler for serving and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/scenarios", a.handleBuildScenario)
	a.router.Get("/api/scenarios", a.handleListScenarios)

	a.router.Post("/api/sessions", a.handleCreateSession)
	a.router.Get("/api/sessions/{id}", a.handleGetSession)
	a.router.Delete("/api/sessions/{id}", a.handleEndSession)

	a.router.Post("/api/sessions/{id}/navigate", a.handleNavigate)
	a.router.Post("/api/sessions/{id}/advance", a.handleAdvance)
	a.router.Post("/api/sessions/{id}/paradigms", a.handleSelectParadigms)
	a.router.Post("/api/sessions/{id}/bets", a.handlePlaceBets)
	a.router.Post("/api/sessions/{id}/raises", a.handleRaiseBet)
	a.router.Post("/api/sessions/{id}/predictions", a.handleRecordPrediction)
	a.router.Post("/api/sessions/{id}/reveal", a.handleRevealEvidence)
	a.router.Post("/api/sessions/{id}/resolve", a.handleResolve)
	a.router.Get("/api/sessions/{id}/leaderboard", a.handleLeaderboard)
	a.router.Post("/api/sessions/{id}/play-again", a.handlePlayAgain)
	a.router.Get("/api/sessions/{id}/debrief.xlsx", a.handleDebriefExport)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
