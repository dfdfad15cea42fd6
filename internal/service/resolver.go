package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Resolver walks a resource's ancestor chain up to its owning project:
// comment -> task -> column -> board -> project. Every call performs fresh
// lookups because any intermediate entity can be deleted concurrently; a
// missing link fails with ErrNotFound before any authorization decision.
type Resolver struct {
	boards   BoardStore
	columns  ColumnStore
	tasks    TaskStore
	comments CommentStore
}

func NewResolver(boards BoardStore, columns ColumnStore, tasks TaskStore, comments CommentStore) *Resolver {
	return &Resolver{
		boards:   boards,
		columns:  columns,
		tasks:    tasks,
		comments: comments,
	}
}

func (r *Resolver) ProjectForBoard(ctx context.Context, boardID uuid.UUID) (uuid.UUID, error) {
	board, err := r.boards.GetByID(ctx, boardID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve board: %w", err)
	}
	if board == nil {
		return uuid.Nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	return board.ProjectID, nil
}

func (r *Resolver) ProjectForColumn(ctx context.Context, columnID uuid.UUID) (uuid.UUID, error) {
	column, err := r.columns.GetByID(ctx, columnID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve column: %w", err)
	}
	if column == nil {
		return uuid.Nil, fmt.Errorf("column: %w", ErrNotFound)
	}
	return r.ProjectForBoard(ctx, column.BoardID)
}

func (r *Resolver) ProjectForTask(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	task, err := r.tasks.GetByID(ctx, taskID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve task: %w", err)
	}
	if task == nil {
		return uuid.Nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	return r.ProjectForColumn(ctx, task.ColumnID)
}

func (r *Resolver) ProjectForComment(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	comment, err := r.comments.GetByID(ctx, commentID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve comment: %w", err)
	}
	if comment == nil {
		return uuid.Nil, fmt.Errorf("comment: %w", ErrNotFound)
	}
	return r.ProjectForTask(ctx, comment.TaskID)
}
