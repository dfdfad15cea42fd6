package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

type BoardService struct {
	boards     BoardStore
	projects   ProjectStore
	authorizer *Authorizer
}

func NewBoardService(boards BoardStore, projects ProjectStore, authorizer *Authorizer) *BoardService {
	return &BoardService{
		boards:     boards,
		projects:   projects,
		authorizer: authorizer,
	}
}

// Create adds a board to a project; any member may. A nil position appends
// after the project's last board.
func (s *BoardService) Create(ctx context.Context, actorID, projectID uuid.UUID, name string, position *int) (*model.Board, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	maxPosition, err := s.boards.GetMaxPosition(ctx, projectID)
	if err != nil {
		return nil, err
	}
	pos, err := resolvePosition(position, maxPosition)
	if err != nil {
		return nil, err
	}

	board := &model.Board{
		ProjectID: projectID,
		Name:      name,
		Position:  pos,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return board, nil
}

// ListByProject returns the project's boards in display order.
func (s *BoardService) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]model.Board, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.boards.GetByProjectID(ctx, projectID)
}

func (s *BoardService) Get(ctx context.Context, actorID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, board.ProjectID, model.RoleMember); err != nil {
		return nil, err
	}
	return board, nil
}

// Update renames or repositions a board; any member may.
func (s *BoardService) Update(ctx context.Context, actorID, boardID uuid.UUID, name string, position *int) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, board.ProjectID, model.RoleMember); err != nil {
		return nil, err
	}

	if name != "" {
		board.Name = name
	}
	if position != nil {
		if *position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", ErrInvalidInput)
		}
		board.Position = *position
	}
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	return board, nil
}

// Delete removes a board and everything under it; requires admin.
func (s *BoardService) Delete(ctx context.Context, actorID, boardID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return fmt.Errorf("board: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, board.ProjectID, model.RoleAdmin); err != nil {
		return err
	}
	return s.boards.DeleteCascade(ctx, boardID)
}
