package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListPackages(ctx context.Context, db *gorm.DB, includeInactive bool) ([]SponsorPackage, error)
	FindPackage(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SponsorPackage, error)
	InsertPackage(ctx context.Context, db *gorm.DB, pkg *SponsorPackage) error
	SavePackage(ctx context.Context, db *gorm.DB, pkg *SponsorPackage) error
	DeletePackage(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ReplaceFeatures(ctx context.Context, db *gorm.DB, packageID snowflake.ID, features []PackageFeature) error

	ListDurations(ctx context.Context, db *gorm.DB, includeInactive bool) ([]Duration, error)
	FindDuration(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Duration, error)
	InsertDuration(ctx context.Context, db *gorm.DB, d *Duration) error
	SaveDuration(ctx context.Context, db *gorm.DB, d *Duration) error
	DeleteDuration(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	ListServices(ctx context.Context, db *gorm.DB, includeInactive bool) ([]OneTimeService, error)
	FindService(ctx context.Context, db *gorm.DB, id snowflake.ID) (*OneTimeService, error)
	InsertService(ctx context.Context, db *gorm.DB, s *OneTimeService) error
	SaveService(ctx context.Context, db *gorm.DB, s *OneTimeService) error
	DeleteService(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	ListEpisodeCounts(ctx context.Context, db *gorm.DB, includeInactive bool) ([]EpisodeCount, error)
	FindEpisodeCount(ctx context.Context, db *gorm.DB, id snowflake.ID) (*EpisodeCount, error)
	InsertEpisodeCount(ctx context.Context, db *gorm.DB, e *EpisodeCount) error
	SaveEpisodeCount(ctx context.Context, db *gorm.DB, e *EpisodeCount) error
	DeleteEpisodeCount(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
