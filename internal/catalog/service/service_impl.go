package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type catalogService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &catalogService{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *catalogService) Packages(ctx context.Context, includeInactive bool) ([]catalogdomain.SponsorPackage, error) {
	return s.repo.ListPackages(ctx, s.db, includeInactive)
}

func (s *catalogService) CreatePackage(ctx context.Context, req catalogdomain.CreatePackageRequest) (*catalogdomain.SponsorPackage, error) {
	var missing []string
	if strings.TrimSpace(req.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if req.BasePrice == nil {
		missing = append(missing, "base_price")
	}
	if strings.TrimSpace(req.Tag) == "" {
		missing = append(missing, "tag")
	}
	if strings.TrimSpace(req.TagClasses) == "" {
		missing = append(missing, "tag_classes")
	}
	if len(missing) > 0 {
		return nil, &catalogdomain.MissingFieldsError{Fields: missing}
	}
	if *req.BasePrice < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	pkg := &catalogdomain.SponsorPackage{
		ID:         s.genID.Generate(),
		Type:       strings.TrimSpace(req.Type),
		Name:       strings.TrimSpace(req.Name),
		BasePrice:  *req.BasePrice,
		Tag:        strings.TrimSpace(req.Tag),
		TagClasses: strings.TrimSpace(req.TagClasses),
		IsActive:   true,
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		pkg.SortOrder = *req.SortOrder
	}
	pkg.Features = s.buildFeatures(pkg.ID, req.Features)

	if err := s.repo.InsertPackage(ctx, s.db, pkg); err != nil {
		s.log.Error("create package", zap.Error(err))
		return nil, err
	}
	return pkg, nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, id string, patch catalogdomain.UpdatePackageRequest) (*catalogdomain.SponsorPackage, error) {
	pkgID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}
	pkg, err := s.repo.FindPackage(ctx, s.db, pkgID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, catalogdomain.ErrNotFound
	}

	if patch.BasePrice != nil && *patch.BasePrice < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}
	if patch.Type != nil {
		pkg.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Name != nil {
		pkg.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.BasePrice != nil {
		pkg.BasePrice = *patch.BasePrice
	}
	if patch.Tag != nil {
		pkg.Tag = strings.TrimSpace(*patch.Tag)
	}
	if patch.TagClasses != nil {
		pkg.TagClasses = strings.TrimSpace(*patch.TagClasses)
	}
	if patch.IsActive != nil {
		pkg.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		pkg.SortOrder = *patch.SortOrder
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.SavePackage(ctx, tx, pkg); err != nil {
			return err
		}
		if patch.Features != nil {
			features := s.buildFeatures(pkg.ID, *patch.Features)
			if err := s.repo.ReplaceFeatures(ctx, tx, pkg.ID, features); err != nil {
				return err
			}
			pkg.Features = features
		}
		return nil
	})
	if err != nil {
		s.log.Error("update package", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return pkg, nil
}

func (s *catalogService) DeletePackage(ctx context.Context, id string) error {
	pkgID, err := catalogdomain.ParseID(id)
	if err != nil {
		return err
	}
	pkg, err := s.repo.FindPackage(ctx, s.db, pkgID)
	if err != nil {
		return err
	}
	if pkg == nil {
		return catalogdomain.ErrNotFound
	}
	return s.repo.DeletePackage(ctx, s.db, pkgID)
}

func (s *catalogService) buildFeatures(packageID snowflake.ID, texts []string) []catalogdomain.PackageFeature {
	features := make([]catalogdomain.PackageFeature, 0, len(texts))
	for i, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		features = append(features, catalogdomain.PackageFeature{
			ID:        s.genID.Generate(),
			PackageID: packageID,
			Text:      text,
			SortOrder: i,
		})
	}
	return features
}

func (s *catalogService) Durations(ctx context.Context, includeInactive bool) ([]catalogdomain.Duration, error) {
	return s.repo.ListDurations(ctx, s.db, includeInactive)
}

func (s *catalogService) CreateDuration(ctx context.Context, req catalogdomain.CreateDurationRequest) (*catalogdomain.Duration, error) {
	var missing []string
	if req.Months == nil {
		missing = append(missing, "months")
	}
	if req.DiscountPercent == nil {
		missing = append(missing, "discount_percent")
	}
	if strings.TrimSpace(req.Label) == "" {
		missing = append(missing, "label")
	}
	if len(missing) > 0 {
		return nil, &catalogdomain.MissingFieldsError{Fields: missing}
	}
	if *req.Months <= 0 {
		return nil, catalogdomain.ErrInvalidMonths
	}
	if *req.DiscountPercent < 0 || *req.DiscountPercent > 100 {
		return nil, catalogdomain.ErrInvalidDiscount
	}

	d := &catalogdomain.Duration{
		ID:              s.genID.Generate(),
		Months:          *req.Months,
		DiscountPercent: *req.DiscountPercent,
		Label:           strings.TrimSpace(req.Label),
		IsActive:        true,
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		d.SortOrder = *req.SortOrder
	}
	if err := s.repo.InsertDuration(ctx, s.db, d); err != nil {
		s.log.Error("create duration", zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *catalogService) UpdateDuration(ctx context.Context, id string, patch catalogdomain.UpdateDurationRequest) (*catalogdomain.Duration, error) {
	durID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.FindDuration(ctx, s.db, durID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, catalogdomain.ErrNotFound
	}
	if patch.Months != nil && *patch.Months <= 0 {
		return nil, catalogdomain.ErrInvalidMonths
	}
	if patch.DiscountPercent != nil && (*patch.DiscountPercent < 0 || *patch.DiscountPercent > 100) {
		return nil, catalogdomain.ErrInvalidDiscount
	}

	if patch.Months != nil {
		d.Months = *patch.Months
	}
	if patch.DiscountPercent != nil {
		d.DiscountPercent = *patch.DiscountPercent
	}
	if patch.Label != nil {
		d.Label = strings.TrimSpace(*patch.Label)
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		d.SortOrder = *patch.SortOrder
	}
	if err := s.repo.SaveDuration(ctx, s.db, d); err != nil {
		s.log.Error("update duration", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}

func (s *catalogService) DeleteDuration(ctx context.Context, id string) error {
	durID, err := catalogdomain.ParseID(id)
	if err != nil {
		return err
	}
	d, err := s.repo.FindDuration(ctx, s.db, durID)
	if err != nil {
		return err
	}
	if d == nil {
		return catalogdomain.ErrNotFound
	}
	return s.repo.DeleteDuration(ctx, s.db, durID)
}

func (s *catalogService) Services(ctx context.Context, includeInactive bool) ([]catalogdomain.OneTimeService, error) {
	return s.repo.ListServices(ctx, s.db, includeInactive)
}

func (s *catalogService) CreateService(ctx context.Context, req catalogdomain.CreateServiceRequest) (*catalogdomain.OneTimeService, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return nil, &catalogdomain.MissingFieldsError{Fields: missing}
	}
	if *req.Price < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	svc := &catalogdomain.OneTimeService{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Price:       *req.Price,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		svc.SortOrder = *req.SortOrder
	}
	if err := s.repo.InsertService(ctx, s.db, svc); err != nil {
		s.log.Error("create service", zap.Error(err))
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id string, patch catalogdomain.UpdateServiceRequest) (*catalogdomain.OneTimeService, error) {
	svcID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}
	svc, err := s.repo.FindService(ctx, s.db, svcID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, catalogdomain.ErrNotFound
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	if patch.Name != nil {
		svc.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		svc.Price = *patch.Price
	}
	if patch.Description != nil {
		svc.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.IsActive != nil {
		svc.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		svc.SortOrder = *patch.SortOrder
	}
	if err := s.repo.SaveService(ctx, s.db, svc); err != nil {
		s.log.Error("update service", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	svcID, err := catalogdomain.ParseID(id)
	if err != nil {
		return err
	}
	svc, err := s.repo.FindService(ctx, s.db, svcID)
	if err != nil {
		return err
	}
	if svc == nil {
		return catalogdomain.ErrNotFound
	}
	return s.repo.DeleteService(ctx, s.db, svcID)
}

func (s *catalogService) EpisodeCounts(ctx context.Context, includeInactive bool) ([]catalogdomain.EpisodeCount, error) {
	return s.repo.ListEpisodeCounts(ctx, s.db, includeInactive)
}

func (s *catalogService) CreateEpisodeCount(ctx context.Context, req catalogdomain.CreateEpisodeCountRequest) (*catalogdomain.EpisodeCount, error) {
	var missing []string
	if req.Count == nil {
		missing = append(missing, "count")
	}
	if req.DiscountPercent == nil {
		missing = append(missing, "discount_percent")
	}
	if strings.TrimSpace(req.Label) == "" {
		missing = append(missing, "label")
	}
	if len(missing) > 0 {
		return nil, &catalogdomain.MissingFieldsError{Fields: missing}
	}
	if *req.Count <= 0 {
		return nil, catalogdomain.ErrInvalidCount
	}
	if *req.DiscountPercent < 0 || *req.DiscountPercent > 100 {
		return nil, catalogdomain.ErrInvalidDiscount
	}

	ec := &catalogdomain.EpisodeCount{
		ID:              s.genID.Generate(),
		Count:           *req.Count,
		DiscountPercent: *req.DiscountPercent,
		Label:           strings.TrimSpace(req.Label),
		IsActive:        true,
	}
	if req.IsActive != nil {
		ec.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		ec.SortOrder = *req.SortOrder
	}
	if err := s.repo.InsertEpisodeCount(ctx, s.db, ec); err != nil {
		s.log.Error("create episode count", zap.Error(err))
		return nil, err
	}
	return ec, nil
}

func (s *catalogService) UpdateEpisodeCount(ctx context.Context, id string, patch catalogdomain.UpdateEpisodeCountRequest) (*catalogdomain.EpisodeCount, error) {
	ecID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}
	ec, err := s.repo.FindEpisodeCount(ctx, s.db, ecID)
	if err != nil {
		return nil, err
	}
	if ec == nil {
		return nil, catalogdomain.ErrNotFound
	}
	if patch.Count != nil && *patch.Count <= 0 {
		return nil, catalogdomain.ErrInvalidCount
	}
	if patch.DiscountPercent != nil && (*patch.DiscountPercent < 0 || *patch.DiscountPercent > 100) {
		return nil, catalogdomain.ErrInvalidDiscount
	}

	if patch.Count != nil {
		ec.Count = *patch.Count
	}
	if patch.DiscountPercent != nil {
		ec.DiscountPercent = *patch.DiscountPercent
	}
	if patch.Label != nil {
		ec.Label = strings.TrimSpace(*patch.Label)
	}
	if patch.IsActive != nil {
		ec.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		ec.SortOrder = *patch.SortOrder
	}
	if err := s.repo.SaveEpisodeCount(ctx, s.db, ec); err != nil {
		s.log.Error("update episode count", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return ec, nil
}

func (s *catalogService) DeleteEpisodeCount(ctx context.Context, id string) error {
	ecID, err := catalogdomain.ParseID(id)
	if err != nil {
		return err
	}
	ec, err := s.repo.FindEpisodeCount(ctx, s.db, ecID)
	if err != nil {
		return err
	}
	if ec == nil {
		return catalogdomain.ErrNotFound
	}
	return s.repo.DeleteEpisodeCount(ctx, s.db, ecID)
}
