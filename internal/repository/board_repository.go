package repository

import (
	"context"
	"errors"

	"projectboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

// GetByProjectID returns the project's boards in display order.
// created_at breaks position ties so the order is deterministic.
func (r *BoardRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position, created_at").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

// DeleteCascade removes the board with its columns, tasks, comments and
// task label links in one transaction.
func (r *BoardRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM comments WHERE task_id IN (
			SELECT tasks.id FROM tasks
			JOIN columns ON columns.id = tasks.column_id
			WHERE columns.board_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM task_labels WHERE task_id IN (
			SELECT tasks.id FROM tasks
			JOIN columns ON columns.id = tasks.column_id
			WHERE columns.board_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tasks WHERE column_id IN (
			SELECT columns.id FROM columns WHERE columns.board_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Board{}, "id = ?", id).Error
	})
}

func (r *BoardRepository) GetMaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Select("COALESCE(MAX(position), -1) as max").
		Where("project_id = ?", projectID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}
