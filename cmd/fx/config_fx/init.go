package config_fx

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"vibenav/internal/config"
)

var Module = fx.Provide(provideConfig)

func provideConfig() config.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
	return config.Load()
}
