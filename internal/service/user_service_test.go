package service

import (
	"context"
	"testing"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileCountsConversations(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewUserService(factory)
	user := seedUser(t, factory, plan.Pro)
	other := seedUser(t, factory, plan.Free)
	now := time.Now()
	seedConversation(t, factory, user.Id, "einstein", now)
	seedConversation(t, factory, user.Id, "gandhi", now)
	seedConversation(t, factory, other.Id, "gandhi", now)

	profile, err := svc.GetProfile(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, "PRO", profile.Plan)
	assert.Equal(t, int64(2), profile.Count.Conversations)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateProfile(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewUserService(factory)
	user := seedUser(t, factory, plan.Free)
	location, blank := "  London ", "   "

	res, err := svc.UpdateProfile(context.Background(), user.Id, &dto.UpdateProfileRequest{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Location:  &location,
		Bio:       &blank,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *res.FirstName)
	assert.Equal(t, "Ada Lovelace", *res.Name)
	assert.Equal(t, "London", *res.Location)
	assert.Nil(t, res.Bio)

	res, err = svc.UpdateProfile(context.Background(), user.Id, &dto.UpdateProfileRequest{FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *res.Name)
	assert.Nil(t, res.Location)

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), &dto.UpdateProfileRequest{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
