package repository

import (
	"context"
	"errors"

	"projectboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithOwner inserts the project and its owner membership as one unit.
// A project must never be observable without an owner.
func (r *ProjectRepository) CreateWithOwner(ctx context.Context, project *model.Project, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		membership := model.Membership{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      model.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetForUser returns projects the user holds a membership in.
func (r *ProjectRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.project_id = projects.id").
		Where("memberships.user_id = ?", userID).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteCascade removes the project and every descendant in post-order:
// comments, task label links, tasks, columns, boards, labels, memberships,
// then the project itself. One transaction, so the cascade is all-or-nothing.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM comments WHERE task_id IN (
			SELECT tasks.id FROM tasks
			JOIN columns ON columns.id = tasks.column_id
			JOIN boards ON boards.id = columns.board_id
			WHERE boards.project_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM task_labels WHERE task_id IN (
			SELECT tasks.id FROM tasks
			JOIN columns ON columns.id = tasks.column_id
			JOIN boards ON boards.id = columns.board_id
			WHERE boards.project_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tasks WHERE column_id IN (
			SELECT columns.id FROM columns
			JOIN boards ON boards.id = columns.board_id
			WHERE boards.project_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM columns WHERE board_id IN (
			SELECT boards.id FROM boards WHERE boards.project_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Board{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", id).Error
	})
}
