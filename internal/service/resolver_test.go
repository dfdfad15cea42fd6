package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"projectboard/internal/model"
)

func newTestResolver() (*Resolver, *MockBoardStore, *MockColumnStore, *MockTaskStore, *MockCommentStore) {
	boards := new(MockBoardStore)
	columns := new(MockColumnStore)
	tasks := new(MockTaskStore)
	comments := new(MockCommentStore)
	return NewResolver(boards, columns, tasks, comments), boards, columns, tasks, comments
}

func TestResolver_CommentChain(t *testing.T) {
	resolver, boards, columns, tasks, comments := newTestResolver()

	projectID := uuid.New()
	boardID := uuid.New()
	columnID := uuid.New()
	taskID := uuid.New()
	commentID := uuid.New()

	comments.On("GetByID", mock.Anything, commentID).Return(&model.Comment{ID: commentID, TaskID: taskID}, nil)
	tasks.On("GetByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, ColumnID: columnID}, nil)
	columns.On("GetByID", mock.Anything, columnID).Return(&model.Column{ID: columnID, BoardID: boardID}, nil)
	boards.On("GetByID", mock.Anything, boardID).Return(&model.Board{ID: boardID, ProjectID: projectID}, nil)

	got, err := resolver.ProjectForComment(context.Background(), commentID)

	assert.NoError(t, err)
	assert.Equal(t, projectID, got)
	comments.AssertExpectations(t)
	tasks.AssertExpectations(t)
	columns.AssertExpectations(t)
	boards.AssertExpectations(t)
}

func TestResolver_MissingLinkIsNotFound(t *testing.T) {
	// Разрыв цепочки на любом звене даёт ErrNotFound.
	resolver, boards, columns, tasks, _ := newTestResolver()

	boardID := uuid.New()
	columnID := uuid.New()
	taskID := uuid.New()

	tasks.On("GetByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, ColumnID: columnID}, nil)
	columns.On("GetByID", mock.Anything, columnID).Return(&model.Column{ID: columnID, BoardID: boardID}, nil)
	boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	got, err := resolver.ProjectForTask(context.Background(), taskID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, uuid.Nil, got)
}

func TestResolver_UnknownBoard(t *testing.T) {
	resolver, boards, _, _, _ := newTestResolver()

	boardID := uuid.New()
	boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	got, err := resolver.ProjectForBoard(context.Background(), boardID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, uuid.Nil, got)
}

func TestResolver_StoreErrorPassesThrough(t *testing.T) {
	resolver, _, columns, _, _ := newTestResolver()

	columnID := uuid.New()
	columns.On("GetByID", mock.Anything, columnID).Return(nil, assert.AnError)

	_, err := resolver.ProjectForColumn(context.Background(), columnID)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
