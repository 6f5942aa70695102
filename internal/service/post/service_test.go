package post

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/repository"
)

type postRepoMock struct {
	createFunc func(ctx context.Context, post *domain.Post) error
	listFunc   func(ctx context.Context) ([]domain.Post, error)
	getFunc    func(ctx context.Context, id string) (*domain.Post, error)
	updateFunc func(ctx context.Context, post *domain.Post) error
	deleteFunc func(ctx context.Context, id string) error
}

func (m *postRepoMock) CreatePost(ctx context.Context, post *domain.Post) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, post)
}

func (m *postRepoMock) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if m.listFunc == nil {
		return nil, nil
	}
	return m.listFunc(ctx)
}

func (m *postRepoMock) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	if m.getFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getFunc(ctx, id)
}

func (m *postRepoMock) UpdatePost(ctx context.Context, post *domain.Post) error {
	if m.updateFunc == nil {
		return nil
	}
	return m.updateFunc(ctx, post)
}

func (m *postRepoMock) DeletePost(ctx context.Context, id string) error {
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func storedPost() *domain.Post {
	return &domain.Post{
		ID:        "p1",
		UserID:    "owner-1",
		Title:     "original title",
		Body:      "original body",
		CreatedAt: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateSetsOwner(t *testing.T) {
	var stored *domain.Post
	repo := &postRepoMock{
		createFunc: func(_ context.Context, p *domain.Post) error {
			stored = p
			return nil
		},
	}
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), "owner-1", "t", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != "owner-1" {
		t.Fatalf("owner not set: %q", created.UserID)
	}
	if created.ID == "" {
		t.Fatalf("expected generated post id")
	}
	if stored == nil || stored.ID != created.ID {
		t.Fatalf("post not persisted")
	}
}

func TestCreateValidation(t *testing.T) {
	repo := &postRepoMock{
		createFunc: func(context.Context, *domain.Post) error {
			t.Fatalf("store must not be touched on validation failure")
			return nil
		},
	}
	svc := New(repo, newLogger())

	_, err := svc.Create(context.Background(), "owner-1", "", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(verr.Fields))
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := New(&postRepoMock{}, newLogger())
	if _, err := svc.Update(context.Background(), "missing", "owner-1", "x", ""); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := &postRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Post, error) {
			return storedPost(), nil
		},
		updateFunc: func(context.Context, *domain.Post) error {
			t.Fatalf("update must not run for a non-owner")
			return nil
		},
	}
	svc := New(repo, newLogger())

	if _, err := svc.Update(context.Background(), "p1", "intruder", "x", "y"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpdatePartialKeepsBody(t *testing.T) {
	var written *domain.Post
	repo := &postRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Post, error) {
			return storedPost(), nil
		},
		updateFunc: func(_ context.Context, p *domain.Post) error {
			written = p
			return nil
		},
	}
	svc := New(repo, newLogger())

	updated, err := svc.Update(context.Background(), "p1", "owner-1", "X", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "X" {
		t.Fatalf("title not replaced: %q", updated.Title)
	}
	if updated.Body != "original body" {
		t.Fatalf("body must stay unchanged, got %q", updated.Body)
	}
	if written == nil || written.Body != "original body" {
		t.Fatalf("persisted body changed")
	}
}

func TestUpdateEmptyKeepsEverything(t *testing.T) {
	repo := &postRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Post, error) {
			return storedPost(), nil
		},
	}
	svc := New(repo, newLogger())

	updated, err := svc.Update(context.Background(), "p1", "owner-1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "original title" || updated.Body != "original body" {
		t.Fatalf("fields changed on empty update: %+v", updated)
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	repo := &postRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Post, error) {
			return storedPost(), nil
		},
		deleteFunc: func(context.Context, string) error {
			t.Fatalf("delete must not run for a non-owner")
			return nil
		},
	}
	svc := New(repo, newLogger())

	if err := svc.Delete(context.Background(), "p1", "intruder"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestDeleteByOwner(t *testing.T) {
	deleted := false
	repo := &postRepoMock{
		getFunc: func(_ context.Context, id string) (*domain.Post, error) {
			return storedPost(), nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			if id != "p1" {
				t.Fatalf("unexpected id: %q", id)
			}
			deleted = true
			return nil
		},
	}
	svc := New(repo, newLogger())

	if err := svc.Delete(context.Background(), "p1", "owner-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatalf("delete not forwarded to store")
	}
}

func TestGetNotFound(t *testing.T) {
	svc := New(&postRepoMock{}, newLogger())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
