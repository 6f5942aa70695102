package repository

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// PostRepository persists posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id string) error
}
