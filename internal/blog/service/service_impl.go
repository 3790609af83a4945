package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	blogdomain "github.com/podcastge/studio/internal/blog/domain"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  blogdomain.Repository
}

type blogService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  blogdomain.Repository
}

func New(p Params) blogdomain.Service {
	return &blogService{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *blogService) Posts(ctx context.Context, includeUnpublished bool) ([]blogdomain.Post, error) {
	return s.repo.List(ctx, s.db, includeUnpublished)
}

func (s *blogService) GetByID(ctx context.Context, id string) (*blogdomain.Post, error) {
	postID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.FindByID(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, blogdomain.ErrNotFound
	}
	return post, nil
}

func (s *blogService) GetBySlug(ctx context.Context, slugValue string) (*blogdomain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, s.db, strings.TrimSpace(slugValue))
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Published {
		return nil, blogdomain.ErrNotFound
	}
	return post, nil
}

func (s *blogService) Create(ctx context.Context, req blogdomain.CreatePostRequest) (*blogdomain.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, blogdomain.ErrMissingTitle
	}
	// content in either locale satisfies the requirement
	if strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.ContentKA) == "" {
		return nil, blogdomain.ErrMissingContent
	}

	post := &blogdomain.Post{
		ID:            s.genID.Generate(),
		Title:         strings.TrimSpace(req.Title),
		TitleKA:       strings.TrimSpace(req.TitleKA),
		Content:       req.Content,
		ContentKA:     req.ContentKA,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		ExcerptKA:     strings.TrimSpace(req.ExcerptKA),
		Author:        strings.TrimSpace(req.Author),
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
	}

	base := strings.TrimSpace(req.Slug)
	if base == "" {
		base = post.Title
	}
	unique, err := s.uniqueSlug(ctx, base, 0)
	if err != nil {
		return nil, err
	}
	post.Slug = unique

	if req.Published != nil && *req.Published {
		post.Published = true
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Insert(ctx, s.db, post); err != nil {
		s.log.Error("create post", zap.Error(err))
		return nil, err
	}
	return post, nil
}

func (s *blogService) Update(ctx context.Context, id string, patch blogdomain.UpdatePostRequest) (*blogdomain.Post, error) {
	postID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.FindByID(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, blogdomain.ErrNotFound
	}

	if patch.Title != nil {
		post.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.TitleKA != nil {
		post.TitleKA = strings.TrimSpace(*patch.TitleKA)
	}
	if patch.Slug != nil && strings.TrimSpace(*patch.Slug) != "" {
		unique, err := s.uniqueSlug(ctx, *patch.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = unique
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.ContentKA != nil {
		post.ContentKA = *patch.ContentKA
	}
	if patch.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.ExcerptKA != nil {
		post.ExcerptKA = strings.TrimSpace(*patch.ExcerptKA)
	}
	if patch.Author != nil {
		post.Author = strings.TrimSpace(*patch.Author)
	}
	if patch.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*patch.FeaturedImage)
	}
	if patch.Published != nil {
		// first publish stamps published_at; unpublishing keeps the stamp
		if *patch.Published && !post.Published {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		post.Published = *patch.Published
	}

	if err := s.repo.Save(ctx, s.db, post); err != nil {
		s.log.Error("update post", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return post, nil
}

// Clap bumps the clap counter for a published post and returns the new
// total.
func (s *blogService) Clap(ctx context.Context, slugValue string) (int64, error) {
	post, err := s.GetBySlug(ctx, slugValue)
	if err != nil {
		return 0, err
	}
	if err := s.repo.IncrementClaps(ctx, s.db, post.ID); err != nil {
		return 0, err
	}
	return post.Claps + 1, nil
}

func (s *blogService) Claps(ctx context.Context, slugValue string) (int64, error) {
	post, err := s.GetBySlug(ctx, slugValue)
	if err != nil {
		return 0, err
	}
	return post.Claps, nil
}

// uniqueSlug slugifies the input and suffixes -2, -3, ... until the
// result is free.
func (s *blogService) uniqueSlug(ctx context.Context, input string, excludeID snowflake.ID) (string, error) {
	base := slug.Make(input)
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, s.db, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func parseID(value string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, blogdomain.ErrMissingID
	}
	id, err := snowflake.ParseString(trimmed)
	if err != nil {
		return 0, blogdomain.ErrInvalidID
	}
	return id, nil
}
