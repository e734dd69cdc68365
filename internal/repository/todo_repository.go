package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository builds a GORM-backed repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// ListByUser returns the user's todos in insertion order.
func (r *todoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Toggle flips is_complete in a single UPDATE scoped by id and owner.
func (r *todoRepository) Toggle(ctx context.Context, id, userID string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Todo{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{
				"is_complete": gorm.Expr("NOT is_complete"),
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
