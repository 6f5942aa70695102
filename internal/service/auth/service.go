package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/crypto"
	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/jwt"
	"github.com/inkpost/inkpost/internal/repository"
)

const minPasswordLength = 6

var (
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("auth: user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
)

// Service handles registration, login and token verification.
type Service struct {
	users    repository.UserRepository
	logger   *slog.Logger
	secret   string
	tokenTTL time.Duration
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.Config) Service {
	return Service{users: users, logger: logger, secret: cfg.JWTSecret, tokenTTL: cfg.TokenTTL}
}

// Register creates an account and returns a signed token for it. The store
// is not touched unless every input rule passes.
func (s Service) Register(ctx context.Context, name, email, password string) (string, error) {
	var fields []domain.FieldError
	if name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Msg: "Please enter your name"})
	}
	if !validEmail(email) {
		fields = append(fields, domain.FieldError{Field: "email", Msg: "Please enter valid email"})
	}
	if len(password) < minPasswordLength {
		fields = append(fields, domain.FieldError{Field: "password", Msg: "Please enter password of at least 6 characters"})
	}
	if len(fields) > 0 {
		return "", &domain.ValidationError{Fields: fields}
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("look up email: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// The unique index catches registrations that raced past the
		// lookup above.
		if errors.Is(err, repository.ErrConflict) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := jwt.Generate(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return token, nil
}

// Login verifies credentials and returns a fresh token. It never writes.
func (s Service) Login(ctx context.Context, email, password string) (string, error) {
	var fields []domain.FieldError
	if !validEmail(email) {
		fields = append(fields, domain.FieldError{Field: "email", Msg: "Please enter valid email"})
	}
	if password == "" {
		fields = append(fields, domain.FieldError{Field: "password", Msg: "Please enter password"})
	}
	if len(fields) > 0 {
		return "", &domain.ValidationError{Fields: fields}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up email: %w", err)
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := jwt.Generate(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authorize verifies a raw token and returns the user id it asserts. No
// store lookup happens here; the token is self-contained.
func (s Service) Authorize(token string) (string, error) {
	return jwt.Parse(token, s.secret)
}

// Profile loads the account behind an authenticated user id.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
