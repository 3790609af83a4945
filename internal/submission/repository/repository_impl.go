package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() submissiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sub *submissiondomain.Submission) error {
	return db.WithContext(ctx).Create(sub).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]submissiondomain.Submission, error) {
	var items []submissiondomain.Submission
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, id snowflake.ID) (*submissiondomain.Submission, error) {
	var sub submissiondomain.Submission
	err := db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repo) CountUnread(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&submissiondomain.Submission{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, sub *submissiondomain.Submission) error {
	return db.WithContext(ctx).Save(sub).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&submissiondomain.Submission{}, "id = ?", id).Error
}
