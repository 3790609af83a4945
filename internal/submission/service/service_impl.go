package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/podcastge/studio/internal/config"
	"github.com/podcastge/studio/internal/providers/email"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Georgian validation and confirmation messages shown on the public form.
const (
	msgNameRequired  = "სახელი სავალდებულოა"
	msgEmailRequired = "ელფოსტა სავალდებულოა"
	msgEmailInvalid  = "ელფოსტის ფორმატი არასწორია"
	msgModeInvalid   = "კალკულატორის რეჟიმი არასწორია"
	msgSubmitted     = "თქვენი განაცხადი მიღებულია, მალე დაგიკავშირდებით"
)

type Params struct {
	fx.In

	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   submissiondomain.Repository
	Email  email.Provider
}

type submissionService struct {
	cfg   *config.Config
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  submissiondomain.Repository
	email email.Provider
}

func New(p Params) submissiondomain.Service {
	return &submissionService{
		cfg:   p.Config,
		db:    p.DB,
		log:   p.Log,
		genID: p.GenID,
		repo:  p.Repo,
		email: p.Email,
	}
}

// Submit persists the inquiry first and only then attempts the email
// notification. A failed send is logged and swallowed: the stored row
// is the durable record.
func (s *submissionService) Submit(ctx context.Context, req submissiondomain.SubmitRequest) (*submissiondomain.SubmitResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	selected, err := json.Marshal(req.SelectedServices)
	if err != nil {
		return nil, err
	}

	sub := &submissiondomain.Submission{
		ID:               s.genID.Generate(),
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Company:          strings.TrimSpace(req.Company),
		Phone:            strings.TrimSpace(req.Phone),
		Message:          strings.TrimSpace(req.Message),
		CalculatorMode:   req.CalculatorMode,
		SelectedPackage:  strings.TrimSpace(req.SelectedPackage),
		DurationMonths:   req.DurationMonths,
		SelectedServices: selected,
		EpisodeCount:     req.EpisodeCount,
		MonthlyPrice:     req.MonthlyPrice,
		TotalPrice:       req.TotalPrice,
		DiscountAmount:   req.DiscountAmount,
	}

	if err := s.repo.Insert(ctx, s.db, sub); err != nil {
		s.log.Error("persist submission", zap.Error(err))
		return nil, err
	}

	s.notify(ctx, sub)

	return &submissiondomain.SubmitResponse{
		ID:      sub.ID.String(),
		Message: msgSubmitted,
	}, nil
}

func validate(req submissiondomain.SubmitRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &submissiondomain.ValidationError{Field: "name", Message: msgNameRequired}
	}
	trimmedEmail := strings.TrimSpace(req.Email)
	if trimmedEmail == "" {
		return &submissiondomain.ValidationError{Field: "email", Message: msgEmailRequired}
	}
	if !strings.Contains(trimmedEmail, "@") {
		return &submissiondomain.ValidationError{Field: "email", Message: msgEmailInvalid}
	}
	switch req.CalculatorMode {
	case submissiondomain.ModeSubscription, submissiondomain.ModeOneTime:
	default:
		return &submissiondomain.ValidationError{Field: "calculator_mode", Message: msgModeInvalid}
	}
	return nil
}

func (s *submissionService) notify(ctx context.Context, sub *submissiondomain.Submission) {
	to := s.cfg.Email.NotifyTo
	if to == "" {
		return
	}
	subject := fmt.Sprintf("ახალი სპონსორობის განაცხადი: %s", sub.Name)
	body := fmt.Sprintf(
		"<h2>ახალი განაცხადი</h2><p><b>%s</b> (%s)</p><p>რეჟიმი: %s</p><p>ჯამური ფასი: %d</p>",
		html.EscapeString(sub.Name), html.EscapeString(sub.Email), sub.CalculatorMode, sub.TotalPrice,
	)
	if err := s.email.Send(ctx, []string{to}, subject, body); err != nil {
		s.log.Warn("submission email notification failed",
			zap.String("submission_id", sub.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *submissionService) List(ctx context.Context) ([]submissiondomain.Submission, error) {
	return s.repo.List(ctx, s.db)
}

func (s *submissionService) Get(ctx context.Context, id string) (*submissiondomain.Submission, error) {
	subID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.Find(ctx, s.db, subID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, submissiondomain.ErrNotFound
	}
	return sub, nil
}

func (s *submissionService) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx, s.db)
}

// MarkRead is idempotent: marking an already-read submission is a no-op.
func (s *submissionService) MarkRead(ctx context.Context, id string) (*submissiondomain.Submission, error) {
	subID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.Find(ctx, s.db, subID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, submissiondomain.ErrNotFound
	}
	if sub.IsRead {
		return sub, nil
	}
	sub.IsRead = true
	if err := s.repo.Save(ctx, s.db, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *submissionService) Delete(ctx context.Context, id string) error {
	subID, err := parseID(id)
	if err != nil {
		return err
	}
	sub, err := s.repo.Find(ctx, s.db, subID)
	if err != nil {
		return err
	}
	if sub == nil {
		return submissiondomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, subID)
}

func parseID(value string) (snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, submissiondomain.ErrMissingID
	}
	id, err := snowflake.ParseString(trimmed)
	if err != nil {
		return 0, submissiondomain.ErrInvalidID
	}
	return id, nil
}
