package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"github.com/podcastge/studio/internal/catalog/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) catalogdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogdomain.SponsorPackage{},
		&catalogdomain.PackageFeature{},
		&catalogdomain.Duration{},
		&catalogdomain.OneTimeService{},
		&catalogdomain.EpisodeCount{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, _ := snowflake.NewNode(1)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }

func TestCreatePackageMissingFields(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Name: "Main Sponsor",
	})

	var missing *catalogdomain.MissingFieldsError
	assert.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"type", "base_price", "tag", "tag_classes"}, missing.Fields)
}

func TestCreatePackageWithFeatures(t *testing.T) {
	svc := setupService(t)

	pkg, err := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type:       "main",
		Name:       "Main Sponsor",
		BasePrice:  floatPtr(1000),
		Tag:        "Popular",
		TagClasses: "bg-amber-100 text-amber-800",
		Features:   []string{"Logo on intro", "", "Host-read ad"},
	})

	assert.NoError(t, err)
	assert.True(t, pkg.IsActive)
	assert.Len(t, pkg.Features, 2)
	assert.Equal(t, "Logo on intro", pkg.Features[0].Text)
	assert.Equal(t, "Host-read ad", pkg.Features[1].Text)

	listed, err := svc.Packages(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Len(t, listed[0].Features, 2)
}

func TestCreatePackageNegativePrice(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type:       "main",
		Name:       "Main Sponsor",
		BasePrice:  floatPtr(-1),
		Tag:        "Popular",
		TagClasses: "bg-amber-100",
	})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidPrice)
}

func TestUpdatePackageReplacesFeatures(t *testing.T) {
	svc := setupService(t)

	pkg, err := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type:       "main",
		Name:       "Main Sponsor",
		BasePrice:  floatPtr(1000),
		Tag:        "Popular",
		TagClasses: "bg-amber-100",
		Features:   []string{"Old feature one", "Old feature two"},
	})
	assert.NoError(t, err)

	updated, err := svc.UpdatePackage(context.Background(), pkg.ID.String(), catalogdomain.UpdatePackageRequest{
		Name:     strPtr("Headline Sponsor"),
		Features: &[]string{"New feature"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Headline Sponsor", updated.Name)
	assert.Len(t, updated.Features, 1)
	assert.Equal(t, "New feature", updated.Features[0].Text)

	listed, err := svc.Packages(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, listed[0].Features, 1)
}

func TestUpdatePackagePartialPatchKeepsFeatures(t *testing.T) {
	svc := setupService(t)

	pkg, _ := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type:       "main",
		Name:       "Main Sponsor",
		BasePrice:  floatPtr(1000),
		Tag:        "Popular",
		TagClasses: "bg-amber-100",
		Features:   []string{"Logo on intro"},
	})

	_, err := svc.UpdatePackage(context.Background(), pkg.ID.String(), catalogdomain.UpdatePackageRequest{
		BasePrice: floatPtr(1200),
	})
	assert.NoError(t, err)

	listed, _ := svc.Packages(context.Background(), true)
	assert.Equal(t, float64(1200), listed[0].BasePrice)
	assert.Len(t, listed[0].Features, 1)
}

func TestUpdatePackageNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.UpdatePackage(context.Background(), "123456789", catalogdomain.UpdatePackageRequest{
		Name: strPtr("Nobody"),
	})
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}

func TestDeletePackageRemovesFeatures(t *testing.T) {
	svc := setupService(t)

	pkg, _ := svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type:       "main",
		Name:       "Main Sponsor",
		BasePrice:  floatPtr(1000),
		Tag:        "Popular",
		TagClasses: "bg-amber-100",
		Features:   []string{"Logo on intro"},
	})

	assert.NoError(t, svc.DeletePackage(context.Background(), pkg.ID.String()))

	listed, _ := svc.Packages(context.Background(), true)
	assert.Empty(t, listed)

	assert.ErrorIs(t, svc.DeletePackage(context.Background(), pkg.ID.String()), catalogdomain.ErrNotFound)
}

func TestPackagesFiltersInactive(t *testing.T) {
	svc := setupService(t)

	svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type: "main", Name: "Active", BasePrice: floatPtr(1000), Tag: "A", TagClasses: "x",
		SortOrder: intPtr(2),
	})
	svc.CreatePackage(context.Background(), catalogdomain.CreatePackageRequest{
		Type: "side", Name: "Hidden", BasePrice: floatPtr(500), Tag: "B", TagClasses: "y",
		IsActive: boolPtr(false), SortOrder: intPtr(1),
	})

	public, err := svc.Packages(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, public, 1)
	assert.Equal(t, "Active", public[0].Name)

	admin, err := svc.Packages(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, admin, 2)
	assert.Equal(t, "Hidden", admin[0].Name)
}

func TestCreateDurationValidation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreateDuration(context.Background(), catalogdomain.CreateDurationRequest{})
	var missing *catalogdomain.MissingFieldsError
	assert.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"months", "discount_percent", "label"}, missing.Fields)

	_, err = svc.CreateDuration(context.Background(), catalogdomain.CreateDurationRequest{
		Months: intPtr(0), DiscountPercent: floatPtr(10), Label: "none",
	})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidMonths)

	_, err = svc.CreateDuration(context.Background(), catalogdomain.CreateDurationRequest{
		Months: intPtr(6), DiscountPercent: floatPtr(101), Label: "6 months",
	})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidDiscount)
}

func TestDurationLifecycle(t *testing.T) {
	svc := setupService(t)

	d, err := svc.CreateDuration(context.Background(), catalogdomain.CreateDurationRequest{
		Months: intPtr(6), DiscountPercent: floatPtr(10), Label: "6 თვე",
	})
	assert.NoError(t, err)

	updated, err := svc.UpdateDuration(context.Background(), d.ID.String(), catalogdomain.UpdateDurationRequest{
		DiscountPercent: floatPtr(15),
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(15), updated.DiscountPercent)
	assert.Equal(t, 6, updated.Months)

	assert.NoError(t, svc.DeleteDuration(context.Background(), d.ID.String()))
	assert.ErrorIs(t, svc.DeleteDuration(context.Background(), d.ID.String()), catalogdomain.ErrNotFound)
}

func TestServiceLifecycle(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreateService(context.Background(), catalogdomain.CreateServiceRequest{Description: "no name"})
	var missing *catalogdomain.MissingFieldsError
	assert.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"name", "price"}, missing.Fields)

	created, err := svc.CreateService(context.Background(), catalogdomain.CreateServiceRequest{
		Name: "Dedicated episode", Price: floatPtr(2500), Description: "Full episode about the sponsor",
	})
	assert.NoError(t, err)

	updated, err := svc.UpdateService(context.Background(), created.ID.String(), catalogdomain.UpdateServiceRequest{
		Price: floatPtr(3000),
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(3000), updated.Price)
	assert.Equal(t, "Dedicated episode", updated.Name)

	assert.NoError(t, svc.DeleteService(context.Background(), created.ID.String()))
}

func TestEpisodeCountLifecycle(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CreateEpisodeCount(context.Background(), catalogdomain.CreateEpisodeCountRequest{
		Count: intPtr(-1), DiscountPercent: floatPtr(0), Label: "bad",
	})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidCount)

	ec, err := svc.CreateEpisodeCount(context.Background(), catalogdomain.CreateEpisodeCountRequest{
		Count: intPtr(4), DiscountPercent: floatPtr(5), Label: "4 ეპიზოდი",
	})
	assert.NoError(t, err)

	updated, err := svc.UpdateEpisodeCount(context.Background(), ec.ID.String(), catalogdomain.UpdateEpisodeCountRequest{
		Label: strPtr("4 episodes"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "4 episodes", updated.Label)
	assert.Equal(t, 4, updated.Count)

	assert.NoError(t, svc.DeleteEpisodeCount(context.Background(), ec.ID.String()))
}

func TestParseIDErrors(t *testing.T) {
	svc := setupService(t)

	_, err := svc.UpdatePackage(context.Background(), "", catalogdomain.UpdatePackageRequest{})
	assert.ErrorIs(t, err, catalogdomain.ErrMissingID)

	_, err = svc.UpdatePackage(context.Background(), "not-a-number", catalogdomain.UpdatePackageRequest{})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidID)
}
