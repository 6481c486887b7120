package scrape_fx

import (
	"errors"
	"log"

	"go.uber.org/fx"

	"vibenav/internal/api/controllers"
	"vibenav/internal/config"
	"vibenav/internal/repositories"
	"vibenav/internal/scraper"
	"vibenav/internal/services"
	"vibenav/internal/tasks"
	"vibenav/pkg/utils"
)

var Module = fx.Provide(
	provideTaskManager,
	provideScrapeService,
	provideScrapeController,
)

func provideTaskManager() *tasks.Manager {
	return tasks.NewManager()
}

func provideScrapeService(
	cfg config.Config,
	placeRepo repositories.PlaceRepository,
	reviewRepo repositories.ReviewRepository,
	vibeService services.VibeServiceInterface,
	summarizer utils.VibeClientInterface,
	taskManager *tasks.Manager,
) services.ScrapeServiceInterface {
	gmaps := scraper.NewGoogleMapsSource(cfg.Scraper)

	// Missing Reddit credentials degrade the API service rather than
	// aborting it; the affected source reports a per-task error instead.
	var reddit scraper.Source
	redditSource, err := scraper.NewRedditSource(cfg)
	if err != nil {
		if errors.Is(err, scraper.ErrMissingRedditCredentials) {
			log.Println("Reddit credentials not set, Reddit scraping disabled")
		} else {
			log.Printf("Could not initialize Reddit source: %v", err)
		}
	} else {
		reddit = redditSource
	}

	return services.NewScrapeService(placeRepo, reviewRepo, vibeService, summarizer, gmaps, reddit, taskManager)
}

func provideScrapeController(scrapeService services.ScrapeServiceInterface) *controllers.ScrapeController {
	return controllers.NewScrapeController(scrapeService)
}
