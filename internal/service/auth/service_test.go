package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/crypto"
	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/jwt"
	"github.com/inkpost/inkpost/internal/repository"
)

type userRepoMock struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, user)
}

func (m *userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByEmailFunc(ctx, email)
}

func (m *userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTL: 10 * time.Hour}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	var stored *domain.User
	repo := &userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	token, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatalf("expected user to be persisted")
	}
	if stored.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if string(stored.PasswordHash) == "secret1" {
		t.Fatalf("plaintext password stored")
	}
	if err := crypto.ComparePassword(stored.PasswordHash, "secret1"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	userID, err := jwt.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != stored.ID {
		t.Fatalf("token user mismatch: got %q want %q", userID, stored.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			t.Fatalf("store must not be touched on validation failure")
			return nil
		},
		getByEmailFunc: func(context.Context, string) (*domain.User, error) {
			t.Fatalf("store must not be touched on validation failure")
			return nil, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	_, err := svc.Register(context.Background(), "", "not-an-email", "short")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Fields), verr.Fields)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		},
		createFunc: func(context.Context, *domain.User) error {
			t.Fatalf("no user may be created for a duplicate email")
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Register(context.Background(), "A", "a@x.com", "secret1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRacedConflict(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, *domain.User) error {
			return repository.ErrConflict
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Register(context.Background(), "A", "a@x.com", "secret1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&userRepoMock{}, newLogger(), testConfig())
	if _, err := svc.Login(context.Background(), "nobody@x.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := crypto.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Login(context.Background(), "a@x.com", "battery-staple"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := crypto.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID, err := svc.Authorize(token)
	if err != nil {
		t.Fatalf("issued token does not authorize: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("unexpected user id: %q", userID)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := New(&userRepoMock{}, newLogger(), testConfig())
	_, err := svc.Login(context.Background(), "garbage", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(verr.Fields))
	}
}

func TestAuthorizeRejectsGarbage(t *testing.T) {
	svc := New(&userRepoMock{}, newLogger(), testConfig())
	if _, err := svc.Authorize("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthorizeRejectsForeignSignature(t *testing.T) {
	foreign, err := jwt.Generate("u1", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate foreign token: %v", err)
	}
	svc := New(&userRepoMock{}, newLogger(), testConfig())
	if _, err := svc.Authorize(foreign); !errors.Is(err, jwt.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
