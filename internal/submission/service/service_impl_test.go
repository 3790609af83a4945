package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/podcastge/studio/internal/config"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
	"github.com/podcastge/studio/internal/submission/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type emailRecorder struct {
	sent []string
	err  error
}

func (r *emailRecorder) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	r.sent = append(r.sent, subject)
	return r.err
}

func setupService(t *testing.T, mail *emailRecorder) submissiondomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&submissiondomain.Submission{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, _ := snowflake.NewNode(1)
	return New(Params{
		Config: &config.Config{Email: config.EmailConfig{NotifyTo: "sales@podcast.ge"}},
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Email:  mail,
	})
}

func validRequest() submissiondomain.SubmitRequest {
	return submissiondomain.SubmitRequest{
		Name:            "გიორგი",
		Email:           "giorgi@example.com",
		CalculatorMode:  submissiondomain.ModeSubscription,
		SelectedPackage: "Main Sponsor",
		DurationMonths:  6,
		MonthlyPrice:    900,
		TotalPrice:      5400,
		DiscountAmount:  600,
	}
}

func TestSubmitMissingName(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	req := validRequest()
	req.Name = "  "
	_, err := svc.Submit(context.Background(), req)

	var verr *submissiondomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "სახელი სავალდებულოა", verr.Message)
}

func TestSubmitMissingEmail(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	req := validRequest()
	req.Email = ""
	_, err := svc.Submit(context.Background(), req)

	var verr *submissiondomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "ელფოსტა სავალდებულოა", verr.Message)
}

func TestSubmitMalformedEmail(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	req := validRequest()
	req.Email = "giorgi.example.com"
	_, err := svc.Submit(context.Background(), req)

	var verr *submissiondomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "ელფოსტის ფორმატი არასწორია", verr.Message)
}

func TestSubmitUnknownMode(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	req := validRequest()
	req.CalculatorMode = "quarterly"
	_, err := svc.Submit(context.Background(), req)

	var verr *submissiondomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "calculator_mode", verr.Field)
}

func TestSubmitPersistsAndNotifies(t *testing.T) {
	mail := &emailRecorder{}
	svc := setupService(t, mail)

	res, err := svc.Submit(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "თქვენი განაცხადი მიღებულია, მალე დაგიკავშირდებით", res.Message)
	assert.Len(t, mail.sent, 1)

	stored, err := svc.Get(context.Background(), res.ID)
	assert.NoError(t, err)
	assert.Equal(t, "გიორგი", stored.Name)
	assert.Equal(t, int64(5400), stored.TotalPrice)
	assert.False(t, stored.IsRead)
}

func TestSubmitSurvivesEmailFailure(t *testing.T) {
	mail := &emailRecorder{err: errors.New("smtp refused")}
	svc := setupService(t, mail)

	res, err := svc.Submit(context.Background(), validRequest())
	assert.NoError(t, err)

	stored, err := svc.Get(context.Background(), res.ID)
	assert.NoError(t, err)
	assert.Equal(t, "giorgi@example.com", stored.Email)
}

func TestSubmitStoresSelectedServices(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	req := validRequest()
	req.CalculatorMode = submissiondomain.ModeOneTime
	req.SelectedServices = []string{"Shoutout", "Dedicated segment"}
	req.EpisodeCount = 4

	res, err := svc.Submit(context.Background(), req)
	assert.NoError(t, err)

	stored, _ := svc.Get(context.Background(), res.ID)
	assert.JSONEq(t, `["Shoutout","Dedicated segment"]`, string(stored.SelectedServices))
	assert.Equal(t, 4, stored.EpisodeCount)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	first, _ := svc.Submit(context.Background(), validRequest())
	svc.Submit(context.Background(), validRequest())

	count, err := svc.UnreadCount(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	marked, err := svc.MarkRead(context.Background(), first.ID)
	assert.NoError(t, err)
	assert.True(t, marked.IsRead)

	// marking again is a no-op
	marked, err = svc.MarkRead(context.Background(), first.ID)
	assert.NoError(t, err)
	assert.True(t, marked.IsRead)

	count, _ = svc.UnreadCount(context.Background())
	assert.Equal(t, int64(1), count)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	_, err := svc.MarkRead(context.Background(), "424242")
	assert.ErrorIs(t, err, submissiondomain.ErrNotFound)

	_, err = svc.MarkRead(context.Background(), "")
	assert.ErrorIs(t, err, submissiondomain.ErrMissingID)
}

func TestDeleteSubmission(t *testing.T) {
	svc := setupService(t, &emailRecorder{})

	res, _ := svc.Submit(context.Background(), validRequest())
	assert.NoError(t, svc.Delete(context.Background(), res.ID))

	_, err := svc.Get(context.Background(), res.ID)
	assert.ErrorIs(t, err, submissiondomain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), res.ID), submissiondomain.ErrNotFound)
}
