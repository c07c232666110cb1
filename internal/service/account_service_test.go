package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terralens/terralens-backend/internal/auth"
	"github.com/terralens/terralens-backend/internal/repository"
)

var testSecret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store, testSecret)

	u, err := svc.Register(context.Background(), "Eco@Example.com", "hunter2-eco")
	require.NoError(t, err)
	assert.Equal(t, "eco@example.com", u.Email, "email is normalized")
	assert.Zero(t, u.Points, "new accounts start with zero balance")

	token, err := svc.Login(context.Background(), "eco@example.com", "hunter2-eco")
	require.NoError(t, err)
	email, err := auth.VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "eco@example.com", email)
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store, testSecret)

	_, err := svc.Register(context.Background(), "", "hunter2-eco")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "not-an-email", "hunter2-eco")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "eco@example.com", "short")
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store, testSecret)

	_, err := svc.Register(context.Background(), "eco@example.com", "hunter2-eco")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "eco@example.com", "different-pw")
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewAccountService(store, testSecret)

	_, err := svc.Register(context.Background(), "eco@example.com", "hunter2-eco")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "eco@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2-eco")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginProvisionedAccountHasNoPassword(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.EnsureAccount(context.Background(), "fb@example.com"))
	svc := NewAccountService(store, testSecret)

	_, err := svc.Login(context.Background(), "fb@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfileLevels(t *testing.T) {
	store := newFakeStore()
	store.addUser("low@example.com", 40, time.Now())
	store.addUser("high@example.com", 120, time.Now())
	svc := NewAccountService(store, testSecret)

	p, err := svc.Profile(context.Background(), "low@example.com")
	require.NoError(t, err)
	assert.Equal(t, "SEEDLING", p.Level)
	assert.Equal(t, int64(60), p.PointsToNext)

	p, err = svc.Profile(context.Background(), "high@example.com")
	require.NoError(t, err)
	assert.Equal(t, "GREEN_WARRIOR", p.Level)
	assert.Zero(t, p.PointsToNext)

	_, err = svc.Profile(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrUnknownUser)
}
