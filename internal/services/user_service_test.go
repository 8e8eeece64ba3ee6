package services

import (
	"context"
	"testing"

	"biobank-backend/internal/auth"
	"biobank-backend/internal/config"
	"biobank-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(store *memStore) *UserService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "biobank-backend"
	return NewUserService(store, auth.NewJWTManager(cfg))
}

func TestSignup(t *testing.T) {
	svc := newUserService(newMemStore())

	user, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email:    " Tech@Lab.Example ",
		Password: "supersecret",
		Name:     "Sam Tech",
		Role:     "technician",
	})
	require.NoError(t, err)
	assert.Equal(t, "tech@lab.example", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestSignupDefaultsToTechnician(t *testing.T) {
	svc := newUserService(newMemStore())

	user, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email:    "new@lab.example",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "technician", user.Role)
}

func TestSignupRejectsBadInput(t *testing.T) {
	svc := newUserService(newMemStore())

	_, err := svc.Signup(context.Background(), &models.SignupRequest{Email: "no-at-sign", Password: "supersecret"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Signup(context.Background(), &models.SignupRequest{Email: "a@lab.example", Password: "short"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Signup(context.Background(), &models.SignupRequest{Email: "a@lab.example", Password: "supersecret", Role: "janitor"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newUserService(newMemStore())

	req := &models.SignupRequest{Email: "a@lab.example", Password: "supersecret"}
	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrEmailExists)
}

func TestLogin(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	_, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email:    "tech@lab.example",
		Password: "supersecret",
		Role:     "auditor",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "Tech@Lab.Example",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.JWTManager.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "tech@lab.example", claims.Email)
	assert.Equal(t, "auditor", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService(newMemStore())

	_, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email: "tech@lab.example", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email: "tech@lab.example", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newUserService(newMemStore())

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ghost@lab.example", Password: "supersecret",
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}
