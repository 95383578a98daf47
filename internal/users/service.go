package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careerarchitect/internal/shared/auth"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	Repo   Repo
	Hasher *auth.Hasher
	Tokens TokenIssuer
}

func NewService(repo Repo, hasher *auth.Hasher, tokens TokenIssuer) *Service {
	return &Service{Repo: repo, Hasher: hasher, Tokens: tokens}
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

// Register creates the user and returns a signed token. Emails are compared
// case-insensitively.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if s == nil || s.Repo == nil {
		return "", errors.New("users service not configured")
	}
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" || in.Password == "" {
		return "", ErrInvalidInput
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return "", err
	}
	return s.Tokens.Issue(user.ID, user.Email)
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s == nil || s.Repo == nil {
		return "", errors.New("users service not configured")
	}
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.Tokens.Issue(user.ID, user.Email)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
