package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Post is a bilingual blog article. English and Georgian content live
// side by side on one row; the site renders whichever locale it needs.
type Post struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Title         string       `json:"title" gorm:"type:text;not null"`
	TitleKA       string       `json:"title_ka" gorm:"column:title_ka;type:text"`
	Slug          string       `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content       string       `json:"content" gorm:"type:text"`
	ContentKA     string       `json:"content_ka" gorm:"column:content_ka;type:text"`
	Excerpt       string       `json:"excerpt" gorm:"type:text"`
	ExcerptKA     string       `json:"excerpt_ka" gorm:"column:excerpt_ka;type:text"`
	Author        string       `json:"author" gorm:"type:text"`
	Published     bool         `json:"published" gorm:"not null;default:false"`
	PublishedAt   *time.Time   `json:"published_at"`
	FeaturedImage string       `json:"featured_image" gorm:"type:text"`
	Claps         int64        `json:"claps" gorm:"not null;default:0"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null"`
}

func (Post) TableName() string { return "posts" }

type CreatePostRequest struct {
	Title         string `json:"title"`
	TitleKA       string `json:"title_ka"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	ContentKA     string `json:"content_ka"`
	Excerpt       string `json:"excerpt"`
	ExcerptKA     string `json:"excerpt_ka"`
	Author        string `json:"author"`
	Published     *bool  `json:"published"`
	FeaturedImage string `json:"featured_image"`
}

type UpdatePostRequest struct {
	Title         *string `json:"title"`
	TitleKA       *string `json:"title_ka"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	ContentKA     *string `json:"content_ka"`
	Excerpt       *string `json:"excerpt"`
	ExcerptKA     *string `json:"excerpt_ka"`
	Author        *string `json:"author"`
	Published     *bool   `json:"published"`
	FeaturedImage *string `json:"featured_image"`
}

type Service interface {
	Posts(ctx context.Context, includeUnpublished bool) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id string, patch UpdatePostRequest) (*Post, error)
	Clap(ctx context.Context, slug string) (int64, error)
	Claps(ctx context.Context, slug string) (int64, error)
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, includeUnpublished bool) ([]Post, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Post, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Post, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string, excludeID snowflake.ID) (bool, error)
	Insert(ctx context.Context, db *gorm.DB, post *Post) error
	Save(ctx context.Context, db *gorm.DB, post *Post) error
	IncrementClaps(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrMissingID      = errors.New("missing_id")
	ErrInvalidID      = errors.New("invalid_id")
	ErrMissingTitle   = errors.New("missing_title")
	ErrMissingContent = errors.New("missing_content")
)
