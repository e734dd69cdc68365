package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"todoapi/internal/cache"
	apperrors "todoapi/internal/errors"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// AddTodoInput carries an already validated add request.
type AddTodoInput struct {
	Value      string
	IsComplete bool
	UserID     string
}

// TodoService handles todo operations scoped to an owner.
type TodoService interface {
	List(ctx context.Context, userID string) ([]model.Todo, error)
	Add(ctx context.Context, in AddTodoInput) (*model.Todo, error)
	Toggle(ctx context.Context, id, userID string) (*model.Todo, error)
	Remove(ctx context.Context, id, userID string) error
}

// todoService caches each owner's list under a versioned key. Mutations bump
// the owner's version instead of deleting the list, so a slow reader can only
// ever write a list under a version nobody reads any more.
type todoService struct {
	repo     repository.TodoRepository
	cache    *cache.Client
	cacheTTL time.Duration

	// owners whose version bump failed; their cached lists are not trusted
	// until a later bump succeeds.
	unbumped sync.Map
}

// NewTodoService creates a new todo service. cache may be nil.
func NewTodoService(repo repository.TodoRepository, cache *cache.Client, cacheTTL time.Duration) TodoService {
	return &todoService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *todoService) versionKey(userID string) string {
	return fmt.Sprintf("todos:%s:version", userID)
}

func (s *todoService) listKey(userID string, version int64) string {
	return fmt.Sprintf("todos:%s:v%d", userID, version)
}

// List returns every todo owned by userID, served from cache when possible.
func (s *todoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	version, useCache := s.cacheVersion(ctx, userID)
	if useCache {
		if data, _ := s.cache.Get(ctx, s.listKey(userID, version)); data != nil {
			var cached []model.Todo
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	if useCache {
		if payload, err := json.Marshal(todos); err == nil {
			_ = s.cache.Set(ctx, s.listKey(userID, version), payload, s.cacheTTL)
		}
	}
	return todos, nil
}

// cacheVersion returns the owner's current list version. It reports false when
// the cache is disabled, unreachable, or still owes this owner a bump.
func (s *todoService) cacheVersion(ctx context.Context, userID string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	if _, owed := s.unbumped.Load(userID); owed {
		if _, err := s.cache.Bump(ctx, s.versionKey(userID)); err != nil {
			return 0, false
		}
		s.unbumped.Delete(userID)
	}
	version, err := s.cache.Version(ctx, s.versionKey(userID))
	if err != nil {
		return 0, false
	}
	return version, true
}

// Add stores a new todo for in.UserID.
func (s *todoService) Add(ctx context.Context, in AddTodoInput) (*model.Todo, error) {
	todo := &model.Todo{
		Value:      in.Value,
		IsComplete: in.IsComplete,
		UserID:     in.UserID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	s.invalidate(ctx, in.UserID)
	return todo, nil
}

// Toggle negates isComplete on the todo matching both id and userID.
func (s *todoService) Toggle(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.repo.Toggle(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("toggle todo: %w", err)
	}
	s.invalidate(ctx, userID)
	return todo, nil
}

// Remove deletes the todo matching both id and userID.
func (s *todoService) Remove(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *todoService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Bump(ctx, s.versionKey(userID)); err != nil {
		s.unbumped.Store(userID, struct{}{})
		slog.WarnContext(ctx, "todo list cache invalidation failed", "user_id", userID, "error", err)
	}
}
