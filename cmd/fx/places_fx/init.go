package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibenav/internal/api/controllers"
	"vibenav/internal/repositories"
	"vibenav/internal/services"
)

var Module = fx.Provide(
	providePlaceRepo,
	provideReviewRepo,
	providePlaceService,
	providePlacesController,
)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func providePlaceService(
	placeRepo repositories.PlaceRepository,
	reviewRepo repositories.ReviewRepository,
) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo, reviewRepo)
}

func providePlacesController(
	placeService services.PlaceServiceInterface,
	vibeService services.VibeServiceInterface,
) *controllers.PlacesController {
	return controllers.NewPlacesController(placeService, vibeService)
}
