package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/auth"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/storage"
)

// LoginResult is returned on successful login
type LoginResult struct {
	Token     string      `json:"token"`
	Role      models.Role `json:"role"`
	ExpiresAt string      `json:"expires_at"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a candidate account and its candidate record.
// A duplicate email returns storage.ErrDuplicate.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hash, Role: models.RoleCandidate}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	c := &models.Candidate{Name: name, Email: email, Status: models.StatusNew}
	if err := s.store.CreateCandidate(ctx, c); err != nil {
		if !errors.Is(err, storage.ErrDuplicate) {
			return nil, err
		}
		// a candidate row left behind by an earlier account is reused
		existing, getErr := s.store.GetCandidateByEmail(ctx, email)
		if getErr != nil {
			return nil, getErr
		}
		c = existing
	}

	s.log.Info("candidate registered", zap.Int64("candidate_id", c.ID), zap.String("email", email))
	return c, nil
}

// Login checks credentials and issues an access token
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.CreateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt.Time.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

// SeedHR creates the HR account when it does not exist yet. It reports
// whether an account was created.
func (s *Service) SeedHR(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: hr email and password are required", ErrInvalidInput)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := s.store.CreateUser(ctx, &models.User{Email: email, PasswordHash: hash, Role: models.RoleHR}); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	s.log.Info("hr account seeded", zap.String("email", email))
	return true, nil
}
