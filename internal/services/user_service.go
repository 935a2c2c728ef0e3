package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campaign-tracker/backend/internal/auth"
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/campaign-tracker/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCredentialsRequired = errors.New("username and password required")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("no active account found with the given credentials")
	ErrInvalidToken        = errors.New("token is invalid or expired")
	ErrUserNotFound        = errors.New("user not found")
)

// registration mirrors the users table limits. bcrypt ignores everything
// past 72 bytes of password.
type registration struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,max=254"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type UserService struct {
	users  UserStore
	issuer *auth.Issuer
	log    *zap.Logger
}

func NewUserService(users UserStore, issuer *auth.Issuer, log *zap.Logger) *UserService {
	return &UserService{users: users, issuer: issuer, log: log}
}

// Register creates an account. The existence pre-check gives the common case
// a clean error; the unique index settles concurrent registrations.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	email = strings.TrimSpace(email)
	if err := models.Validate(registration{Username: username, Email: email, Password: password}); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("username", u.Username))
	return u, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issuer.IssuePair(u.ID, u.Username)
}

// Refresh exchanges a refresh token for a new access token.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	access, err := s.issuer.Refresh(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return access, nil
}

func (s *UserService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
