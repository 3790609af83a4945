package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"github.com/podcastge/studio/internal/config"
	"gorm.io/gorm"
)

// EnsureCatalog seeds the calculator catalog from calculator.yml on a
// fresh database. Each entity type is seeded only when its table is
// empty, so edits made through the admin panel are never overwritten
// on restart.
func EnsureCatalog(db *gorm.DB, seed config.CatalogSeed) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePackages(tx, node, seed.Packages); err != nil {
			return err
		}
		if err := ensureDurations(tx, node, seed.Durations); err != nil {
			return err
		}
		if err := ensureServices(tx, node, seed.Services); err != nil {
			return err
		}
		return ensureEpisodeCounts(tx, node, seed.EpisodeCounts)
	})
}

func ensurePackages(tx *gorm.DB, node *snowflake.Node, seeds []config.PackageSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&catalogdomain.SponsorPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range seeds {
		pkg := catalogdomain.SponsorPackage{
			ID:         node.Generate(),
			Type:       s.Type,
			Name:       s.Name,
			BasePrice:  s.BasePrice,
			Tag:        s.Tag,
			TagClasses: s.TagClasses,
			IsActive:   true,
			SortOrder:  s.SortOrder,
		}
		for i, text := range s.Features {
			pkg.Features = append(pkg.Features, catalogdomain.PackageFeature{
				ID:        node.Generate(),
				PackageID: pkg.ID,
				Text:      text,
				SortOrder: i,
			})
		}
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureDurations(tx *gorm.DB, node *snowflake.Node, seeds []config.DurationSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&catalogdomain.Duration{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range seeds {
		d := catalogdomain.Duration{
			ID:              node.Generate(),
			Months:          s.Months,
			DiscountPercent: s.DiscountPercent,
			Label:           s.Label,
			IsActive:        true,
			SortOrder:       s.SortOrder,
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureServices(tx *gorm.DB, node *snowflake.Node, seeds []config.ServiceSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&catalogdomain.OneTimeService{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range seeds {
		svc := catalogdomain.OneTimeService{
			ID:          node.Generate(),
			Name:        s.Name,
			Price:       s.Price,
			Description: s.Description,
			IsActive:    true,
			SortOrder:   s.SortOrder,
		}
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureEpisodeCounts(tx *gorm.DB, node *snowflake.Node, seeds []config.EpisodeCountSeed) error {
	if len(seeds) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&catalogdomain.EpisodeCount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, s := range seeds {
		ec := catalogdomain.EpisodeCount{
			ID:              node.Generate(),
			Count:           s.Count,
			DiscountPercent: s.DiscountPercent,
			Label:           s.Label,
			IsActive:        true,
			SortOrder:       s.SortOrder,
		}
		if err := tx.Create(&ec).Error; err != nil {
			return err
		}
	}
	return nil
}
