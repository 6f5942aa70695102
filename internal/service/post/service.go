package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/repository"
)

// ErrNotOwner is returned when a caller tries to mutate a post created by
// someone else.
var ErrNotOwner = errors.New("post: user is not the owner")

// Service handles owner-enforced post CRUD.
type Service struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(posts repository.PostRepository, logger *slog.Logger) Service {
	return Service{posts: posts, logger: logger}
}

// Create stores a new post owned by userID.
func (s Service) Create(ctx context.Context, userID, title, body string) (*domain.Post, error) {
	var fields []domain.FieldError
	if title == "" {
		fields = append(fields, domain.FieldError{Field: "title", Msg: "Title text is required"})
	}
	if body == "" {
		fields = append(fields, domain.FieldError{Field: "body", Msg: "Body text is required"})
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	p := &domain.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.CreatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info("post created", "post_id", p.ID, "user_id", userID)
	return p, nil
}

// List returns every post, newest first. Reads are not owner-restricted.
func (s Service) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListPosts(ctx)
}

// Get returns a single post by id.
func (s Service) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// Update replaces title and body of a post owned by userID. An absent or
// empty field keeps the stored value; clearing a field to empty is not
// supported.
func (s Service) Update(ctx context.Context, id, userID, title, body string) (*domain.Post, error) {
	p, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotOwner
	}
	if title != "" {
		p.Title = title
	}
	if body != "" {
		p.Body = body
	}
	if err := s.posts.UpdatePost(ctx, p); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.logger.Info("post updated", "post_id", p.ID, "user_id", userID)
	return p, nil
}

// Delete removes a post owned by userID.
func (s Service) Delete(ctx context.Context, id, userID string) error {
	p, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotOwner
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.logger.Info("post deleted", "post_id", id, "user_id", userID)
	return nil
}
