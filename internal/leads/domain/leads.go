package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ContactMessage struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Email     string       `json:"email" gorm:"type:text;not null"`
	Message   string       `json:"message" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

type NewsletterSubscriber struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Email     string       `json:"email" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
}

func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type Service interface {
	Contact(ctx context.Context, req ContactRequest) (*ContactMessage, error)
	Subscribe(ctx context.Context, req SubscribeRequest) (*NewsletterSubscriber, error)
}

type Repository interface {
	InsertContact(ctx context.Context, db *gorm.DB, msg *ContactMessage) error
	FindSubscriber(ctx context.Context, db *gorm.DB, email string) (*NewsletterSubscriber, error)
	InsertSubscriber(ctx context.Context, db *gorm.DB, sub *NewsletterSubscriber) error
}

// ValidationError carries the localized message shown on the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
