package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Packages(ctx context.Context, includeInactive bool) ([]SponsorPackage, error)
	CreatePackage(ctx context.Context, req CreatePackageRequest) (*SponsorPackage, error)
	UpdatePackage(ctx context.Context, id string, patch UpdatePackageRequest) (*SponsorPackage, error)
	DeletePackage(ctx context.Context, id string) error

	Durations(ctx context.Context, includeInactive bool) ([]Duration, error)
	CreateDuration(ctx context.Context, req CreateDurationRequest) (*Duration, error)
	UpdateDuration(ctx context.Context, id string, patch UpdateDurationRequest) (*Duration, error)
	DeleteDuration(ctx context.Context, id string) error

	Services(ctx context.Context, includeInactive bool) ([]OneTimeService, error)
	CreateService(ctx context.Context, req CreateServiceRequest) (*OneTimeService, error)
	UpdateService(ctx context.Context, id string, patch UpdateServiceRequest) (*OneTimeService, error)
	DeleteService(ctx context.Context, id string) error

	EpisodeCounts(ctx context.Context, includeInactive bool) ([]EpisodeCount, error)
	CreateEpisodeCount(ctx context.Context, req CreateEpisodeCountRequest) (*EpisodeCount, error)
	UpdateEpisodeCount(ctx context.Context, id string, patch UpdateEpisodeCountRequest) (*EpisodeCount, error)
	DeleteEpisodeCount(ctx context.Context, id string) error
}

type CreatePackageRequest struct {
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	BasePrice  *float64 `json:"base_price"`
	Tag        string   `json:"tag"`
	TagClasses string   `json:"tag_classes"`
	IsActive   *bool    `json:"is_active"`
	SortOrder  *int     `json:"sort_order"`
	Features   []string `json:"features"`
}

// UpdatePackageRequest applies only the fields that are set. A non-nil
// Features slice replaces the feature list wholesale.
type UpdatePackageRequest struct {
	Type       *string   `json:"type"`
	Name       *string   `json:"name"`
	BasePrice  *float64  `json:"base_price"`
	Tag        *string   `json:"tag"`
	TagClasses *string   `json:"tag_classes"`
	IsActive   *bool     `json:"is_active"`
	SortOrder  *int      `json:"sort_order"`
	Features   *[]string `json:"features"`
}

type CreateDurationRequest struct {
	Months          *int     `json:"months"`
	DiscountPercent *float64 `json:"discount_percent"`
	Label           string   `json:"label"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       *int     `json:"sort_order"`
}

type UpdateDurationRequest struct {
	Months          *int     `json:"months"`
	DiscountPercent *float64 `json:"discount_percent"`
	Label           *string  `json:"label"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       *int     `json:"sort_order"`
}

type CreateServiceRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order"`
}

type CreateEpisodeCountRequest struct {
	Count           *int     `json:"count"`
	DiscountPercent *float64 `json:"discount_percent"`
	Label           string   `json:"label"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       *int     `json:"sort_order"`
}

type UpdateEpisodeCountRequest struct {
	Count           *int     `json:"count"`
	DiscountPercent *float64 `json:"discount_percent"`
	Label           *string  `json:"label"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       *int     `json:"sort_order"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrMissingID       = errors.New("missing_id")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidMonths   = errors.New("invalid_months")
	ErrInvalidCount    = errors.New("invalid_count")
)

// MissingFieldsError lists the required fields absent from a create request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ParseID parses a client-supplied entity id.
func ParseID(value string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, ErrMissingID
	}
	id, err := snowflake.ParseString(trimmed)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
