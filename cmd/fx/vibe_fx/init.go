package vibe_fx

import (
	"fmt"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibenav/internal/config"
	"vibenav/internal/repositories"
	"vibenav/internal/services"
	"vibenav/pkg/utils"
)

var Module = fx.Provide(
	provideVibeRepo,
	provideVibeService,
	ProvideVibeClient,
)

func provideVibeRepo(db *gorm.DB) repositories.VibeSummaryRepository {
	return repositories.NewVibeSummaryRepository(db)
}

func provideVibeService(vibeRepo repositories.VibeSummaryRepository) services.VibeServiceInterface {
	return services.NewVibeService(vibeRepo)
}

// ProvideVibeClient builds the summarizer for the configured provider. A
// missing API key is not fatal here; the client degrades to its stub payload.
func ProvideVibeClient(cfg config.Config) (utils.VibeClientInterface, error) {
	log.Printf("Initializing %s vibe client with model %s", cfg.AI.Provider, cfg.AI.Model)

	client, err := utils.NewVibeClient(cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create vibe client: %w", err)
	}
	return client, nil
}
