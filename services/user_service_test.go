package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

func TestUserService_Register(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewUserService(db, mailer, testLogger())
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Ana@Example.com ", "s3cretpass", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "s3cretpass", u.Password)
	assert.True(t, utils.CheckPasswordHash("s3cretpass", u.Password))
	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)

	_, err = svc.Register(ctx, "ana@example.com", "anotherpass", "Ana 2")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Register(ctx, "not-an-email", "s3cretpass", "x")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Register(ctx, "bo@example.com", "short", "Bo")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestUserService_RegisterIgnoresMailFailure(t *testing.T) {
	svc := NewUserService(newTestDB(t), &fakeMailer{err: errors.New("ses down")}, testLogger())
	_, err := svc.Register(context.Background(), "ana@example.com", "s3cretpass", "Ana")
	assert.NoError(t, err)
}

func TestUserService_ProfileAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil, testLogger())
	ctx := context.Background()

	ana, err := svc.Register(ctx, "ana@example.com", "s3cretpass", "Ana")
	require.NoError(t, err)
	bo, err := svc.Register(ctx, "bo@example.com", "s3cretpass", "Bo")
	require.NoError(t, err)

	name := "Ana Maria"
	u, err := svc.UpdateProfile(ctx, ana.ID, ProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)

	taken := "BO@example.com"
	_, err = svc.UpdateProfile(ctx, ana.ID, ProfileInput{Email: &taken})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, bo.ID, users[1].ID)
}

func TestUserService_DeleteRemovesData(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, nil, testLogger())
	ctx := context.Background()

	u, err := svc.Register(ctx, "ana@example.com", "s3cretpass", "Ana")
	require.NoError(t, err)
	f := mustFood(t, db, "Banana", "Fresh", 89, 1.1, 23, 0.3, 1, "medium")
	_, err = NewFoodLogService(db, nil).Log(ctx, u.ID, FoodLogInput{FoodID: f.ID, Quantity: 1, Meal: models.Snack})
	require.NoError(t, err)
	_, err = NewGoalService(db, nil).Upsert(ctx, u.ID, GoalInput{Calories: 2000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), apperr.ErrNotFound)

	var n int64
	require.NoError(t, db.Unscoped().Model(&models.FoodLog{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Unscoped().Model(&models.DailyGoal{}).Count(&n).Error)
	assert.Zero(t, n)

	// the email is free again
	_, err = svc.Register(ctx, "ana@example.com", "s3cretpass", "Ana")
	assert.NoError(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u, err := NewUserService(db, nil, testLogger()).Register(ctx, "ana@example.com", "s3cretpass", "Ana")
	require.NoError(t, err)

	auth := NewAuthService(db, "test-secret", time.Hour)

	sess, err := auth.Authenticate(ctx, "ANA@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	claims, err := utils.ParseJWT([]byte("test-secret"), sess.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "ana@example.com", claims.Email)

	_, err = auth.Authenticate(ctx, "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = auth.Authenticate(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
