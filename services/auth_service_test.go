package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/utils"
)

type stubUserStore struct {
	users       map[string]*models.User
	findErr     error
	passwordErr error

	resetID   int
	resetHash string
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = len(s.users) + 1
	if s.users == nil {
		s.users = map[string]*models.User{}
	}
	s.users[user.Email] = user
	return nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.users[email]; ok {
		return user, nil
	}
	return nil, errors.New("no rows")
}

func (s *stubUserStore) FindByEmailAndAnswer(ctx context.Context, email, answer string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if user, ok := s.users[email]; ok && user.Answer == answer {
		return user, nil
	}
	return nil, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("no rows")
}

func (s *stubUserStore) Update(ctx context.Context, user *models.User) error {
	return nil
}

func (s *stubUserStore) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	if s.passwordErr != nil {
		return s.passwordErr
	}
	s.resetID = id
	s.resetHash = hashedPassword
	return nil
}

func storeWithUser(t *testing.T) (*stubUserStore, *models.User) {
	t.Helper()
	hash, err := utils.HashPassword("oldpass")
	require.NoError(t, err)

	user := &models.User{
		ID:       7,
		Email:    "buyer@example.com",
		Password: hash,
		Answer:   "first pet",
		Role:     "customer",
	}
	return &stubUserStore{users: map[string]*models.User{user.Email: user}}, user
}

func TestRegisterStoresSecurityAnswer(t *testing.T) {
	store := &stubUserStore{}
	svc := NewAuthService(store)

	result, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Buyer",
		Email:    "buyer@example.com",
		Password: "secret1",
		Answer:   "first pet",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "first pet", store.users["buyer@example.com"].Answer)
}

func TestForgotPasswordWrongEmail(t *testing.T) {
	store, _ := storeWithUser(t)
	svc := NewAuthService(store)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{
		Email:       "ghost@example.com",
		Answer:      "first pet",
		NewPassword: "newpass",
	})

	assert.ErrorIs(t, err, ErrWrongEmailOrAnswer)
	assert.Empty(t, store.resetHash)
}

func TestForgotPasswordWrongAnswer(t *testing.T) {
	store, _ := storeWithUser(t)
	svc := NewAuthService(store)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{
		Email:       "buyer@example.com",
		Answer:      "wrong",
		NewPassword: "newpass",
	})

	assert.ErrorIs(t, err, ErrWrongEmailOrAnswer)
	assert.Empty(t, store.resetHash)
}

func TestForgotPasswordResetsPassword(t *testing.T) {
	store, user := storeWithUser(t)
	svc := NewAuthService(store)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{
		Email:       "buyer@example.com",
		Answer:      "first pet",
		NewPassword: "newpass",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, store.resetID)

	// The stored value is a hash of the new password, never the plain text.
	assert.NotEqual(t, "newpass", store.resetHash)
	ok, err := utils.VerifyPassword(store.resetHash, "newpass")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestForgotPasswordStoreFailure(t *testing.T) {
	store, _ := storeWithUser(t)
	store.findErr = errors.New("dbms error")
	svc := NewAuthService(store)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{
		Email:       "buyer@example.com",
		Answer:      "first pet",
		NewPassword: "newpass",
	})

	assert.ErrorIs(t, err, store.findErr)
	assert.NotErrorIs(t, err, ErrWrongEmailOrAnswer)
}
