package cmd

import (
	"database/sql"
	"fmt"

	"rmassistant/api"
	"rmassistant/internal"
	"rmassistant/internal/logger"
	"rmassistant/internal/repository"
	"rmassistant/internal/service"

	_ "modernc.org/sqlite"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		logger.New().Errorf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	log := logger.New()

	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	// The enhancement capability is decided exactly once, here. A missing
	// key or a failed client construction disables enhancement; it never
	// stops the process.
	gptRepository := repository.NewDisabledGptRepository()
	if secrets.OpenAIApiKey == "" {
		log.Info("OPENAI_API_KEY not set - narrative enhancement disabled")
	} else {
		configured, err := repository.NewGptRepository(secrets.OpenAIApiKey, secrets.OpenAIModel)
		if err != nil {
			log.Errorf("failed to construct gpt repository, enhancement disabled: %v", err)
		} else {
			gptRepository = configured
		}
	}

	dbConn, err := sql.Open("sqlite", secrets.AuditDbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}
	if err := repository.EnsureApiRequestSchema(dbConn); err != nil {
		return nil, err
	}

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		GuardrailService:     service.NewGuardrailService(),
		ReadinessService:     service.NewReadinessService(),
		NarrativeService:     service.NewNarrativeService(),
		ScoreService:         service.NewScoreService(),
		GptRepository:        gptRepository,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
	}

	return apiHandler, nil
}
