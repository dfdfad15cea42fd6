package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"projectboard/internal/model"
)

type LabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create adds a new label to the database
func (r *LabelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

// GetByID retrieves a label by its ID
func (r *LabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	if err := r.db.WithContext(ctx).First(&label, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &label, nil
}

// GetByProjectID retrieves all labels in a project's label set
func (r *LabelRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&labels).Error
	return labels, err
}

// GetByTaskID retrieves all labels attached to a specific task
func (r *LabelRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	err := r.db.WithContext(ctx).
		Joins("JOIN task_labels ON task_labels.label_id = labels.id").
		Where("task_labels.task_id = ?", taskID).
		Find(&labels).Error
	return labels, err
}

// Update updates an existing label
func (r *LabelRepository) Update(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Save(label).Error
}

// Delete removes a label and detaches it from every task
func (r *LabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_labels WHERE label_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Label{}, "id = ?", id).Error
	})
}

// GetTasksWithLabel retrieves all tasks that have a specific label
func (r *LabelRepository) GetTasksWithLabel(ctx context.Context, labelID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN task_labels ON task_labels.task_id = tasks.id").
		Where("task_labels.label_id = ?", labelID).
		Find(&tasks).Error
	return tasks, err
}
