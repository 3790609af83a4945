package repository

import (
	"context"
	"errors"

	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() leadsdomain.Repository {
	return &repo{}
}

func (r *repo) InsertContact(ctx context.Context, db *gorm.DB, msg *leadsdomain.ContactMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}

func (r *repo) FindSubscriber(ctx context.Context, db *gorm.DB, email string) (*leadsdomain.NewsletterSubscriber, error) {
	var sub leadsdomain.NewsletterSubscriber
	err := db.WithContext(ctx).First(&sub, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repo) InsertSubscriber(ctx context.Context, db *gorm.DB, sub *leadsdomain.NewsletterSubscriber) error {
	return db.WithContext(ctx).Create(sub).Error
}
