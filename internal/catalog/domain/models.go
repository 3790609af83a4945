package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SponsorPackage is one sponsorship offer in the calculator. Features are
// ordered by SortOrder and replaced wholesale on update, never merged.
type SponsorPackage struct {
	ID         snowflake.ID     `json:"id" gorm:"primaryKey"`
	Type       string           `json:"type" gorm:"type:text;not null"`
	Name       string           `json:"name" gorm:"type:text;not null"`
	BasePrice  float64          `json:"base_price" gorm:"not null;default:0"`
	Tag        string           `json:"tag" gorm:"type:text;not null"`
	TagClasses string           `json:"tag_classes" gorm:"type:text;not null"`
	IsActive   bool             `json:"is_active" gorm:"not null;default:true"`
	SortOrder  int              `json:"sort_order" gorm:"not null;default:0"`
	Features   []PackageFeature `json:"features" gorm:"foreignKey:PackageID;references:ID"`
	CreatedAt  time.Time        `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"not null"`
}

func (SponsorPackage) TableName() string { return "sponsor_packages" }

type PackageFeature struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	PackageID snowflake.ID `json:"package_id" gorm:"not null;index"`
	Text      string       `json:"text" gorm:"type:text;not null"`
	SortOrder int          `json:"sort_order" gorm:"not null;default:0"`
}

func (PackageFeature) TableName() string { return "package_features" }

// Duration is a subscription length tier. The discount applies per month.
type Duration struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	Months          int          `json:"months" gorm:"not null"`
	DiscountPercent float64      `json:"discount_percent" gorm:"not null;default:0"`
	Label           string       `json:"label" gorm:"type:text;not null"`
	IsActive        bool         `json:"is_active" gorm:"not null;default:true"`
	SortOrder       int          `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null"`
}

func (Duration) TableName() string { return "durations" }

type OneTimeService struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	Price       float64      `json:"price" gorm:"not null;default:0"`
	Description string       `json:"description" gorm:"type:text"`
	IsActive    bool         `json:"is_active" gorm:"not null;default:true"`
	SortOrder   int          `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null"`
}

func (OneTimeService) TableName() string { return "one_time_services" }

type EpisodeCount struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	Count           int          `json:"count" gorm:"not null"`
	DiscountPercent float64      `json:"discount_percent" gorm:"not null;default:0"`
	Label           string       `json:"label" gorm:"type:text;not null"`
	IsActive        bool         `json:"is_active" gorm:"not null;default:true"`
	SortOrder       int          `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null"`
}

func (EpisodeCount) TableName() string { return "episode_counts" }
