package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the validity window of issued tokens.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrConflict        = errors.New("username or email already exists")
	ErrNotFound        = errors.New("user not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// UserRepository captures the persistence operations the auth service needs.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Service struct {
	users    UserRepository
	secret   []byte
	hashCost int
	now      func() time.Time
}

func NewService(users UserRepository, secret string) *Service {
	return &Service{
		users:    users,
		secret:   []byte(secret),
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates the account and returns a token for it. Nothing is
// created when the username or email is already taken.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error) {
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return "", models.PublicUser{}, ErrConflict
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return "", models.PublicUser{}, fmt.Errorf("lookup username: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", models.PublicUser{}, ErrConflict
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return "", models.PublicUser{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.PublicUser{}, ErrPasswordTooLong
	}
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrDuplicate) {
			return "", models.PublicUser{}, ErrConflict
		}
		return "", models.PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Login accepts a username or an email as identifier.
func (s *Service) Login(ctx context.Context, identifier, password string) (string, models.PublicUser, error) {
	user, err := s.users.GetUserByUsername(ctx, identifier)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user, err = s.users.GetUserByEmail(ctx, identifier)
	}
	if errors.Is(err, repositories.ErrUserNotFound) {
		return "", models.PublicUser{}, ErrNotFound
	}
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", models.PublicUser{}, ErrUnauthorized
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return "", models.PublicUser{}, fmt.Errorf("update last login: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Me returns the public view of the user behind a verified token.
func (s *Service) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.PublicUser{}, ErrNotFound
	}
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}
	return user.Public(), nil
}
