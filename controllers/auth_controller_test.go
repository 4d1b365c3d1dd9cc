package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/services"
)

type stubUserStore struct {
	user        *models.User
	findErr     error
	resetCalled bool
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errors.New("no rows")
}

func (s *stubUserStore) FindByEmailAndAnswer(ctx context.Context, email, answer string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user != nil && s.user.Email == email && s.user.Answer == answer {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	return nil, errors.New("no rows")
}

func (s *stubUserStore) Update(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserStore) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	s.resetCalled = true
	return nil
}

func setupForgotPasswordRouter(store *stubUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := &AuthController{authService: services.NewAuthService(store)}

	router := gin.New()
	router.POST("/auth/forgot-password", ctrl.ForgotPassword)
	return router
}

func postForgotPassword(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestForgotPasswordMissingEmail(t *testing.T) {
	store := &stubUserStore{}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{"answer": "x", "new_password": "newpass"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, store.resetCalled)
}

func TestForgotPasswordMissingAnswer(t *testing.T) {
	store := &stubUserStore{}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{"email": "a@b.com", "new_password": "newpass"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, store.resetCalled)
}

func TestForgotPasswordMissingNewPassword(t *testing.T) {
	store := &stubUserStore{}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{"email": "a@b.com", "answer": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, store.resetCalled)
}

func TestForgotPasswordUnknownAccount(t *testing.T) {
	store := &stubUserStore{}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{
		"email":        "a@b.com",
		"answer":       "x",
		"new_password": "newpass",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong email or answer")
	assert.False(t, store.resetCalled)
}

func TestForgotPasswordResets(t *testing.T) {
	store := &stubUserStore{user: &models.User{ID: 7, Email: "a@b.com", Answer: "x"}}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{
		"email":        "a@b.com",
		"answer":       "x",
		"new_password": "newpass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.True(t, store.resetCalled)
}

func TestForgotPasswordStoreFailure(t *testing.T) {
	store := &stubUserStore{findErr: errors.New("dbms error")}
	router := setupForgotPasswordRouter(store)

	w := postForgotPassword(t, router, gin.H{
		"email":        "a@b.com",
		"answer":       "x",
		"new_password": "newpass",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, store.resetCalled)
}
