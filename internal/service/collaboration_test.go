package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"projectboard/internal/model"
)

// Сквозной сценарий совместной работы: владелец строит проект, второй
// пользователь проходит путь чужак -> участник -> админ.
func TestCollaborationLifecycle(t *testing.T) {
	ctx := context.Background()

	projects := new(MockProjectStore)
	memberships := new(MockMembershipStore)
	users := new(MockUserStore)
	boards := new(MockBoardStore)
	columns := new(MockColumnStore)
	tasks := new(MockTaskStore)
	comments := new(MockCommentStore)

	authorizer := NewAuthorizer(memberships)
	resolver := NewResolver(boards, columns, tasks, comments)
	projectSvc := NewProjectService(projects, memberships, users, authorizer)
	boardSvc := NewBoardService(boards, projects, authorizer)
	columnSvc := NewColumnService(columns, boards, resolver, authorizer)
	taskSvc := NewTaskService(tasks, new(MockLabelStore), users, memberships, resolver, authorizer)

	alice := uuid.New()
	bob := uuid.New()
	bobUser := &model.User{ID: bob, Email: "bob@example.com", Name: "Bob"}

	// Алиса создаёт проект, доску, колонку и задачу.
	projects.On("CreateWithOwner", mock.Anything, mock.AnythingOfType("*model.Project"), alice).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Project).ID = uuid.New()
		}).Return(nil)
	project, err := projectSvc.Create(ctx, alice, "Launch", "")
	assert.NoError(t, err)

	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, alice).
		Return(membershipFor(project.ID, alice, model.RoleOwner), nil)

	projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	boards.On("GetMaxPosition", mock.Anything, project.ID).Return(-1, nil)
	boards.On("Create", mock.Anything, mock.AnythingOfType("*model.Board")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Board).ID = uuid.New()
		}).Return(nil)
	board, err := boardSvc.Create(ctx, alice, project.ID, "Main", nil)
	assert.NoError(t, err)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	columns.On("GetMaxPosition", mock.Anything, board.ID).Return(-1, nil)
	columns.On("Create", mock.Anything, mock.AnythingOfType("*model.Column")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Column).ID = uuid.New()
		}).Return(nil)
	column, err := columnSvc.Create(ctx, alice, board.ID, "Todo", nil)
	assert.NoError(t, err)
	columns.On("GetByID", mock.Anything, column.ID).Return(column, nil)

	tasks.On("GetMaxPosition", mock.Anything, column.ID).Return(-1, nil)
	tasks.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
	task, err := taskSvc.Create(ctx, alice, CreateTaskInput{ColumnID: column.ID, Title: "Ship it"})
	assert.NoError(t, err)
	assert.Equal(t, 0, task.Position)

	// Боб пока чужак: проект для него невидим как Forbidden.
	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, bob).Return(nil, nil).Once()
	_, err = boardSvc.Get(ctx, bob, board.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Алиса добавляет Боба участником.
	users.On("FindByEmail", mock.Anything, "bob@example.com").Return(bobUser, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, bob).Return(nil, nil).Once()
	memberships.On("Create", mock.Anything, mock.AnythingOfType("*model.Membership")).Return(nil)
	bobMembership, err := projectSvc.AddMember(ctx, alice, project.ID, "bob@example.com", model.RoleMember)
	assert.NoError(t, err)
	bobMembership.ID = uuid.New()

	// Теперь Боб читает доску, но удалить её не может.
	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, bob).Return(bobMembership, nil).Times(2)
	got, err := boardSvc.Get(ctx, bob, board.ID)
	assert.NoError(t, err)
	assert.Equal(t, board.ID, got.ID)

	err = boardSvc.Delete(ctx, bob, board.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	boards.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)

	// Алиса повышает Боба до админа.
	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, bob).Return(bobMembership, nil).Once()
	memberships.On("UpdateRole", mock.Anything, bobMembership.ID, model.RoleAdmin).Return(nil)
	promoted, err := projectSvc.ChangeMemberRole(ctx, alice, project.ID, bob, model.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, promoted.Role)

	// Админу удаление доски уже доступно, каскад срабатывает.
	memberships.On("GetByProjectAndUser", mock.Anything, project.ID, bob).Return(promoted, nil)
	boards.On("DeleteCascade", mock.Anything, board.ID).Return(nil)
	err = boardSvc.Delete(ctx, bob, board.ID)
	assert.NoError(t, err)
	boards.AssertExpectations(t)
}
