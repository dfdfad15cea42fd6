package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projectboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// GetByColumnID retrieves all tasks in a column in display order
func (r *TaskRepository) GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position, created_at").
		Find(&tasks).Error
	return tasks, err
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// DeleteCascade removes a task with its comments and label links
func (r *TaskRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_labels WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, "id = ?", id).Error
	})
}

// Move overwrites the task's column and position. Siblings are not
// renumbered: display order is always (position, created_at), so duplicate
// positions stay deterministic.
func (r *TaskRepository) Move(ctx context.Context, taskID, columnID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"column_id": columnID,
			"position":  position,
		}).Error
}

// AddLabel adds a label to a task
func (r *TaskRepository) AddLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO task_labels (task_id, label_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, labelID,
	).Error
}

// RemoveLabel removes a label from a task
func (r *TaskRepository) RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_labels WHERE task_id = ? AND label_id = ?",
		taskID, labelID,
	).Error
}

// GetMaxPosition returns the highest position in a column, -1 when empty
func (r *TaskRepository) GetMaxPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(position), -1) as max").
		Where("column_id = ?", columnID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}
