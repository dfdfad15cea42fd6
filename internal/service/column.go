package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

type ColumnService struct {
	columns    ColumnStore
	boards     BoardStore
	resolver   *Resolver
	authorizer *Authorizer
}

func NewColumnService(columns ColumnStore, boards BoardStore, resolver *Resolver, authorizer *Authorizer) *ColumnService {
	return &ColumnService{
		columns:    columns,
		boards:     boards,
		resolver:   resolver,
		authorizer: authorizer,
	}
}

// Create adds a column to a board; any member may. A nil position appends
// after the board's last column.
func (s *ColumnService) Create(ctx context.Context, actorID, boardID uuid.UUID, name string, position *int) (*model.Column, error) {
	projectID, err := s.resolver.ProjectForBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	maxPosition, err := s.columns.GetMaxPosition(ctx, boardID)
	if err != nil {
		return nil, err
	}
	pos, err := resolvePosition(position, maxPosition)
	if err != nil {
		return nil, err
	}

	column := &model.Column{
		BoardID:  boardID,
		Name:     name,
		Position: pos,
	}
	if err := s.columns.Create(ctx, column); err != nil {
		return nil, fmt.Errorf("create column: %w", err)
	}
	return column, nil
}

// ListByBoard returns the board's columns in display order.
func (s *ColumnService) ListByBoard(ctx context.Context, actorID, boardID uuid.UUID) ([]model.Column, error) {
	projectID, err := s.resolver.ProjectForBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.columns.GetByBoardID(ctx, boardID)
}

func (s *ColumnService) Get(ctx context.Context, actorID, columnID uuid.UUID) (*model.Column, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, fmt.Errorf("column: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForBoard(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return column, nil
}

// Update renames or repositions a column; any member may.
func (s *ColumnService) Update(ctx context.Context, actorID, columnID uuid.UUID, name string, position *int) (*model.Column, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, fmt.Errorf("column: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForBoard(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	if name != "" {
		column.Name = name
	}
	if position != nil {
		if *position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", ErrInvalidInput)
		}
		column.Position = *position
	}
	if err := s.columns.Update(ctx, column); err != nil {
		return nil, fmt.Errorf("update column: %w", err)
	}
	return column, nil
}

// Delete removes a column with its tasks and comments; any member may.
func (s *ColumnService) Delete(ctx context.Context, actorID, columnID uuid.UUID) error {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if column == nil {
		return fmt.Errorf("column: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForBoard(ctx, column.BoardID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return err
	}
	return s.columns.DeleteCascade(ctx, columnID)
}
