package migration

import (
	"github.com/podcastge/studio/internal/config"
	"github.com/podcastge/studio/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		catalogSeed, err := config.LoadCatalogSeed()
		if err != nil {
			return err
		}
		return seed.EnsureCatalog(conn, catalogSeed)
	}),
)
