package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	blogdomain "github.com/podcastge/studio/internal/blog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() blogdomain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, includeUnpublished bool) ([]blogdomain.Post, error) {
	var posts []blogdomain.Post
	q := db.WithContext(ctx).Order("created_at DESC")
	if !includeUnpublished {
		q = q.Where("published = ?", true)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*blogdomain.Post, error) {
	var post blogdomain.Post
	err := db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*blogdomain.Post, error) {
	var post blogdomain.Post
	err := db.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *repo) SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error) {
	var count int64
	q := db.WithContext(ctx).Model(&blogdomain.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, post *blogdomain.Post) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, post *blogdomain.Post) error {
	return db.WithContext(ctx).Save(post).Error
}

// IncrementClaps bumps the counter in SQL so concurrent claps never
// lose an increment.
func (r *repo) IncrementClaps(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&blogdomain.Post{}).
		Where("id = ?", id).
		UpdateColumn("claps", gorm.Expr("claps + ?", 1)).Error
}
