package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"vibenav/internal/config"
	"vibenav/internal/infra"
)

var Module = fx.Provide(provideDB)

func provideDB(lc fx.Lifecycle, cfg config.Config) *gorm.DB {
	db := infra.InitSqlite(cfg.DBPath)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseSqlite(db)
			return nil
		},
	})

	return db
}
