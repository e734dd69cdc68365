package repository

import (
	"context"
	"errors"

	"todoapi/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// TodoRepository defines persistence operations for todos.
// Every method except Create is scoped to the owning user id.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	Toggle(ctx context.Context, id, userID string) (*model.Todo, error)
	Delete(ctx context.Context, id, userID string) error
}
