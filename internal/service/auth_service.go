package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"kanban/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgUsernameRequired  = "Username is required."
	msgPasswordRequired  = "Password is required."
	msgIncorrectUsername = "Incorrect username."
	msgIncorrectPassword = "Incorrect password."
)

// AuthService registers users and checks their credentials.
type AuthService struct {
	users    UserStore
	audit    *AuditService
	hashCost int
}

func NewAuthService(users UserStore, audit *AuditService) *AuthService {
	return &AuthService{
		users:    users,
		audit:    audit,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// Register creates a user. Missing fields and a taken username come back as
// *domain.ValidationError; nothing is written in that case.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, &domain.ValidationError{Message: msgUsernameRequired}
	}
	if password == "" {
		return nil, &domain.ValidationError{Message: msgPasswordRequired}
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("User %s is already taken.", username)}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.LogRegister(ctx, u.ID, u.Username)
	return u, nil
}

// Login returns the user matching the credentials or a *domain.AuthError.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.AuthError{Message: msgIncorrectUsername}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordKey(password)); err != nil {
		return nil, &domain.AuthError{Message: msgIncorrectPassword, UserID: u.ID}
	}

	return u, nil
}

// passwordKey digests the password to a fixed 44 bytes before bcrypt, which
// rejects inputs over 72 bytes.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// CurrentUser resolves the id stored in a session. A user that no longer
// exists yields domain.ErrNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
