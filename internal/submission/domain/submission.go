package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ModeSubscription = "subscription"
	ModeOneTime      = "one_time"
)

// Submission is one sponsorship inquiry from the public calculator.
// Created once, immutably; the only later mutation is the admin
// marking it read. Prices are the client's computed snapshot, stored
// for reference, not re-derived.
type Submission struct {
	ID               snowflake.ID   `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"type:text;not null"`
	Email            string         `json:"email" gorm:"type:text;not null"`
	Company          string         `json:"company" gorm:"type:text"`
	Phone            string         `json:"phone" gorm:"type:text"`
	Message          string         `json:"message" gorm:"type:text"`
	CalculatorMode   string         `json:"calculator_mode" gorm:"type:text;not null"`
	SelectedPackage  string         `json:"selected_package" gorm:"type:text"`
	DurationMonths   int            `json:"duration_months" gorm:"default:0"`
	SelectedServices datatypes.JSON `json:"selected_services"`
	EpisodeCount     int            `json:"episode_count" gorm:"default:0"`
	MonthlyPrice     int64          `json:"monthly_price" gorm:"default:0"`
	TotalPrice       int64          `json:"total_price" gorm:"default:0"`
	DiscountAmount   int64          `json:"discount_amount" gorm:"default:0"`
	IsRead           bool           `json:"is_read" gorm:"not null;default:false"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null"`
}

func (Submission) TableName() string { return "submissions" }

type SubmitRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Company          string   `json:"company"`
	Phone            string   `json:"phone"`
	Message          string   `json:"message"`
	CalculatorMode   string   `json:"calculator_mode"`
	SelectedPackage  string   `json:"selected_package"`
	DurationMonths   int      `json:"duration_months"`
	SelectedServices []string `json:"selected_services"`
	EpisodeCount     int      `json:"episode_count"`
	MonthlyPrice     int64    `json:"monthly_price"`
	TotalPrice       int64    `json:"total_price"`
	DiscountAmount   int64    `json:"discount_amount"`
}

type SubmitResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	List(ctx context.Context) ([]Submission, error)
	Get(ctx context.Context, id string) (*Submission, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id string) (*Submission, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Submission) error
	List(ctx context.Context, db *gorm.DB) ([]Submission, error)
	Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Submission, error)
	CountUnread(ctx context.Context, db *gorm.DB) (int64, error)
	Save(ctx context.Context, db *gorm.DB, sub *Submission) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

// ValidationError carries the localized message shown to the visitor.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNotFound  = errors.New("not_found")
	ErrMissingID = errors.New("missing_id")
	ErrInvalidID = errors.New("invalid_id")
)
