package repositories

import (
	"context"

	"TodoAPI/models"

	"gorm.io/gorm"
)

// TaskRepository scopes every query to one owner; a task of another user is ErrNotFound.
type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	FindByID(ctx context.Context, userID string, id uint) (*models.Task, error)
	List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error) // newest first
	ListOldestFirst(ctx context.Context, userID string) ([]models.Task, error)              // ordinal addressing
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, userID string, id uint) error
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *models.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) FindByID(ctx context.Context, userID string, id uint) (*models.Task, error) {
	var t models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", q.Priority)
	}
	items := make([]models.Task, 0)
	if err := tx.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *taskRepo) ListOldestFirst(ctx context.Context, userID string) ([]models.Task, error) {
	items := make([]models.Task, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes all columns; the caller loaded t through FindByID so ownership is already checked.
func (r *taskRepo) Update(ctx context.Context, t *models.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *taskRepo) Delete(ctx context.Context, userID string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // nothing to delete → not found
	}
	return nil
}
