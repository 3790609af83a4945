package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgNameRequired  = "სახელი სავალდებულოა"
	msgEmailRequired = "ელფოსტა სავალდებულოა"
	msgEmailInvalid  = "ელფოსტის ფორმატი არასწორია"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  leadsdomain.Repository
}

type leadsService struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  leadsdomain.Repository
}

func New(p Params) leadsdomain.Service {
	return &leadsService{
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *leadsService) Contact(ctx context.Context, req leadsdomain.ContactRequest) (*leadsdomain.ContactMessage, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &leadsdomain.ValidationError{Field: "name", Message: msgNameRequired}
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	msg := &leadsdomain.ContactMessage{
		ID:      s.genID.Generate(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.InsertContact(ctx, s.db, msg); err != nil {
		s.log.Error("persist contact message", zap.Error(err))
		return nil, err
	}
	return msg, nil
}

// Subscribe is idempotent: an already-subscribed email returns the
// existing row instead of an error, so repeat form submits look like
// success to the visitor.
func (s *leadsService) Subscribe(ctx context.Context, req leadsdomain.SubscribeRequest) (*leadsdomain.NewsletterSubscriber, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.FindSubscriber(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	sub := &leadsdomain.NewsletterSubscriber{
		ID:    s.genID.Generate(),
		Email: normalized,
	}
	if err := s.repo.InsertSubscriber(ctx, s.db, sub); err != nil {
		s.log.Error("persist subscriber", zap.Error(err))
		return nil, err
	}
	return sub, nil
}

func validateEmail(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &leadsdomain.ValidationError{Field: "email", Message: msgEmailRequired}
	}
	if !strings.Contains(trimmed, "@") {
		return &leadsdomain.ValidationError{Field: "email", Message: msgEmailInvalid}
	}
	return nil
}
