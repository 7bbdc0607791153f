package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/pkg"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (string, *entity.User, error)
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	Logout(ctx context.Context, token string) error
}

type userRepo interface {
	Create(ctx context.Context, username, passwordHash string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type sessionRepo interface {
	Save(ctx context.Context, token string, identity entity.Identity, ttl time.Duration) error
	Get(ctx context.Context, token string) (*entity.Identity, error)
	Delete(ctx context.Context, token string) error
}

type authService struct {
	logger *slog.Logger

	users    userRepo
	sessions sessionRepo
	tokenTTL time.Duration
	cost     int
}

func NewAuthService(logger *slog.Logger, users userRepo, sessions sessionRepo, tokenTTL time.Duration) AuthService {
	return &authService{
		logger:   logger.With("component", "auth"),
		users:    users,
		sessions: sessions,
		tokenTTL: tokenTTL,
		cost:     bcrypt.DefaultCost,
	}
}

func (that *authService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), that.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := that.users.Create(ctx, username, string(hash))
	if err != nil {
		return nil, fmt.Errorf("could not create user %q: %w", username, err)
	}

	that.logger.Info("user registered", "userID", user.ID)

	return user, nil
}

// Login verifies the credentials and opens a session. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (that *authService) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	user, err := that.users.FindByUsername(ctx, username)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("could not find user: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperror.ErrInvalidCredentials
	}

	token, err := pkg.GenerateToken()
	if err != nil {
		return "", nil, err
	}

	identity := entity.Identity{UserID: user.ID, Username: user.Username}
	if err = that.sessions.Save(ctx, token, identity, that.tokenTTL); err != nil {
		return "", nil, fmt.Errorf("could not open session: %w", err)
	}

	that.logger.Info("user logged in", "userID", user.ID)

	return token, user, nil
}

func (that *authService) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, apperror.ErrUnauthorized
	}

	identity, err := that.sessions.Get(ctx, token)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("could not resolve session: %w", err)
	}

	return identity, nil
}

func (that *authService) Logout(ctx context.Context, token string) error {
	if err := that.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("could not close session: %w", err)
	}

	return nil
}
