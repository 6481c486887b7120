package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"vibenav/cmd/fx/config_fx"
	"vibenav/cmd/fx/db_fx"
	"vibenav/cmd/fx/places_fx"
	"vibenav/cmd/fx/scrape_fx"
	"vibenav/cmd/fx/vibe_fx"
	"vibenav/internal/api/controllers"
	"vibenav/internal/config"
	"vibenav/pkg/middleware"
	"vibenav/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		places_fx.Module,
		vibe_fx.Module,
		scrape_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	placesController *controllers.PlacesController,
	scrapeController *controllers.ScrapeController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(cors.Default()) // open to all origins
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, placesController, scrapeController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	placesController *controllers.PlacesController,
	scrapeController *controllers.ScrapeController) {

	r.GET("/", func(c *gin.Context) {
		utils.RespondSuccess(c, nil, "Vibe Navigator API is running!")
	})

	placesGroup := r.Group("/places")
	placesGroup.GET("/", placesController.ListPlaces)
	placesGroup.POST("/", placesController.CreatePlace)
	placesGroup.GET("/:id", placesController.GetPlaceByID)
	placesGroup.GET("/:id/reviews", placesController.ListReviews)
	placesGroup.GET("/:id/vibe", placesController.GetVibe)

	r.GET("/search/", placesController.SearchPlaces)

	scrapeGroup := r.Group("/scrape")
	scrapeGroup.POST("/reviews", scrapeController.ScrapeReviews)
	scrapeGroup.POST("/place-and-reviews", scrapeController.CreatePlaceAndScrape)

	r.GET("/tasks/:id", scrapeController.GetTask)
}
