package services

import (
	"context"
	"fmt"
	"strings"

	"biobank-backend/internal/auth"
	"biobank-backend/internal/models"
)

var allowedRoles = map[string]bool{
	"technician": true,
	"admin":      true,
	"auditor":    true,
}

type UserService struct {
	Users      UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(users UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Users: users, JWTManager: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", models.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = "technician"
	}
	if !allowedRoles[role] {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, models.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrValidation)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account suspended: %w", models.ErrValidation)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrValidation)
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}
