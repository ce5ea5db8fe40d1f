package service

import (
	"context"
	"time"

	"kanban/internal/domain"
)

// UserStore persists users. Create must report a duplicate username as
// domain.ErrUsernameTaken and lookups of missing rows as domain.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TaskStore persists tasks. Missing rows are reported as domain.ErrNotFound.
type TaskStore interface {
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	SetStatus(ctx context.Context, id int64, status domain.Status, at time.Time) error
	Delete(ctx context.Context, id int64) error
}
