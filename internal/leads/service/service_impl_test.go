package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
	"github.com/podcastge/studio/internal/leads/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) leadsdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&leadsdomain.ContactMessage{}, &leadsdomain.NewsletterSubscriber{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, _ := snowflake.NewNode(1)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestContactValidation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Contact(context.Background(), leadsdomain.ContactRequest{Email: "a@b.ge"})
	var verr *leadsdomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)

	_, err = svc.Contact(context.Background(), leadsdomain.ContactRequest{Name: "Nino", Email: "not-an-email"})
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "ელფოსტის ფორმატი არასწორია", verr.Message)
}

func TestContactPersists(t *testing.T) {
	svc := setupService(t)

	msg, err := svc.Contact(context.Background(), leadsdomain.ContactRequest{
		Name:    "Nino",
		Email:   "nino@example.com",
		Message: "Interested in sponsoring",
	})
	assert.NoError(t, err)
	assert.NotZero(t, msg.ID)
}

func TestSubscribeIdempotent(t *testing.T) {
	svc := setupService(t)

	first, err := svc.Subscribe(context.Background(), leadsdomain.SubscribeRequest{Email: "Fan@Example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "fan@example.com", first.Email)

	second, err := svc.Subscribe(context.Background(), leadsdomain.SubscribeRequest{Email: "fan@example.com "})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSubscribeValidation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Subscribe(context.Background(), leadsdomain.SubscribeRequest{Email: ""})
	var verr *leadsdomain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "ელფოსტა სავალდებულოა", verr.Message)

	_, err = svc.Subscribe(context.Background(), leadsdomain.SubscribeRequest{Email: "bogus"})
	assert.True(t, errors.As(err, &verr))
}
