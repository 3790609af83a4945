package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) ListPackages(ctx context.Context, db *gorm.DB, includeInactive bool) ([]catalogdomain.SponsorPackage, error) {
	var items []catalogdomain.SponsorPackage
	q := db.WithContext(ctx).
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("sort_order ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPackage(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.SponsorPackage, error) {
	var pkg catalogdomain.SponsorPackage
	err := db.WithContext(ctx).
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&pkg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repo) InsertPackage(ctx context.Context, db *gorm.DB, pkg *catalogdomain.SponsorPackage) error {
	return db.WithContext(ctx).Create(pkg).Error
}

func (r *repo) SavePackage(ctx context.Context, db *gorm.DB, pkg *catalogdomain.SponsorPackage) error {
	return db.WithContext(ctx).Omit("Features").Save(pkg).Error
}

func (r *repo) DeletePackage(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&catalogdomain.PackageFeature{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalogdomain.SponsorPackage{}, "id = ?", id).Error
	})
}

// ReplaceFeatures swaps the feature list atomically: delete then insert
// inside one transaction so a crash cannot leave the package featureless.
func (r *repo) ReplaceFeatures(ctx context.Context, db *gorm.DB, packageID snowflake.ID, features []catalogdomain.PackageFeature) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&catalogdomain.PackageFeature{}).Error; err != nil {
			return err
		}
		if len(features) == 0 {
			return nil
		}
		return tx.Create(&features).Error
	})
}

func (r *repo) ListDurations(ctx context.Context, db *gorm.DB, includeInactive bool) ([]catalogdomain.Duration, error) {
	var items []catalogdomain.Duration
	q := db.WithContext(ctx).Order("sort_order ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindDuration(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.Duration, error) {
	var d catalogdomain.Duration
	err := db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *repo) InsertDuration(ctx context.Context, db *gorm.DB, d *catalogdomain.Duration) error {
	return db.WithContext(ctx).Create(d).Error
}

func (r *repo) SaveDuration(ctx context.Context, db *gorm.DB, d *catalogdomain.Duration) error {
	return db.WithContext(ctx).Save(d).Error
}

func (r *repo) DeleteDuration(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&catalogdomain.Duration{}, "id = ?", id).Error
}

func (r *repo) ListServices(ctx context.Context, db *gorm.DB, includeInactive bool) ([]catalogdomain.OneTimeService, error) {
	var items []catalogdomain.OneTimeService
	q := db.WithContext(ctx).Order("sort_order ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindService(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.OneTimeService, error) {
	var s catalogdomain.OneTimeService
	err := db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) InsertService(ctx context.Context, db *gorm.DB, s *catalogdomain.OneTimeService) error {
	return db.WithContext(ctx).Create(s).Error
}

func (r *repo) SaveService(ctx context.Context, db *gorm.DB, s *catalogdomain.OneTimeService) error {
	return db.WithContext(ctx).Save(s).Error
}

func (r *repo) DeleteService(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&catalogdomain.OneTimeService{}, "id = ?", id).Error
}

func (r *repo) ListEpisodeCounts(ctx context.Context, db *gorm.DB, includeInactive bool) ([]catalogdomain.EpisodeCount, error) {
	var items []catalogdomain.EpisodeCount
	q := db.WithContext(ctx).Order("sort_order ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindEpisodeCount(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.EpisodeCount, error) {
	var e catalogdomain.EpisodeCount
	err := db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *repo) InsertEpisodeCount(ctx context.Context, db *gorm.DB, e *catalogdomain.EpisodeCount) error {
	return db.WithContext(ctx).Create(e).Error
}

func (r *repo) SaveEpisodeCount(ctx context.Context, db *gorm.DB, e *catalogdomain.EpisodeCount) error {
	return db.WithContext(ctx).Save(e).Error
}

func (r *repo) DeleteEpisodeCount(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&catalogdomain.EpisodeCount{}, "id = ?", id).Error
}
