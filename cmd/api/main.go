package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"hypotourney/adapters/analysis"
	"hypotourney/adapters/memory"
	"hypotourney/adapters/postgres"
	"hypotourney/app"
	"hypotourney/internal"
	"hypotourney/internal/config"
	"hypotourney/ports"
	"hypotourney/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := internal.NewDefaultLogger()

	sessions, scenarios, err := buildRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		log.Fatalf("export dir: %v", err)
	}

	analysisClient := analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.PollInterval, cfg.Analysis.MaxAttempts)
	tournaments := app.NewTournamentService(sessions, scenarios, logger)
	analyses := app.NewAnalysisService(analysisClient, scenarios, logger)

	server := ui.NewApp(ui.Config{ExportDir: cfg.Export.Dir}, tournaments, analyses, logger)

	addr := ":" + cfg.Server.Port
	logger.Info("listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildRepositories(cfg *config.Config, logger *internal.Logger) (ports.SessionRepository, ports.ScenarioRepository, error) {
	if cfg.Database.URL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		return memory.NewSessionRepository(), memory.NewScenarioRepository(), nil
	}

	dsn := cfg.Database.URL
	if !strings.Contains(dsn, "sslmode=") {
		dsn += "?sslmode=" + cfg.Database.SSLMode
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, nil, err
	}
	logger.Info("connected to postgres")
	return postgres.NewSessionRepository(db), postgres.NewScenarioRepository(db), nil
}
