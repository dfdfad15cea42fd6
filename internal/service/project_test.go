package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"projectboard/internal/model"
)

func newTestProjectService() (*ProjectService, *MockProjectStore, *MockMembershipStore, *MockUserStore) {
	projects := new(MockProjectStore)
	memberships := new(MockMembershipStore)
	users := new(MockUserStore)
	svc := NewProjectService(projects, memberships, users, NewAuthorizer(memberships))
	return svc, projects, memberships, users
}

func membershipFor(projectID, userID uuid.UUID, role string) *model.Membership {
	return &model.Membership{ID: uuid.New(), ProjectID: projectID, UserID: userID, Role: role}
}

func TestProjectCreate_OwnerMembershipIsAtomic(t *testing.T) {
	svc, projects, _, _ := newTestProjectService()

	actorID := uuid.New()
	projects.On("CreateWithOwner", mock.Anything, mock.AnythingOfType("*model.Project"), actorID).Return(nil)

	project, err := svc.Create(context.Background(), actorID, "Website Redesign", "relaunch")

	assert.NoError(t, err)
	assert.Equal(t, "Website Redesign", project.Name)
	projects.AssertExpectations(t)
}

func TestProjectGet_NotFoundBeforeForbidden(t *testing.T) {
	// Несуществующий проект: NotFound даже для чужака.
	svc, projects, memberships, _ := newTestProjectService()

	actorID := uuid.New()
	projectID := uuid.New()
	projects.On("GetByID", mock.Anything, projectID).Return(nil, nil)

	_, err := svc.Get(context.Background(), actorID, projectID)

	assert.ErrorIs(t, err, ErrNotFound)
	memberships.AssertNotCalled(t, "GetByProjectAndUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectGet_NonMemberForbidden(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	actorID := uuid.New()
	projectID := uuid.New()
	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID, Name: "p"}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, actorID).Return(nil, nil)

	_, err := svc.Get(context.Background(), actorID, projectID)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProjectDelete_OwnerOnly(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	adminID := uuid.New()
	projectID := uuid.New()
	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, adminID).
		Return(membershipFor(projectID, adminID, model.RoleAdmin), nil)

	err := svc.Delete(context.Background(), adminID, projectID)

	assert.ErrorIs(t, err, ErrForbidden)
	projects.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)
}

func TestProjectDelete_CascadesForOwner(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	ownerID := uuid.New()
	projectID := uuid.New()
	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	projects.On("DeleteCascade", mock.Anything, projectID).Return(nil)

	err := svc.Delete(context.Background(), ownerID, projectID)

	assert.NoError(t, err)
	projects.AssertExpectations(t)
}

func TestAddMember_Success(t *testing.T) {
	svc, projects, memberships, users := newTestProjectService()

	ownerID := uuid.New()
	projectID := uuid.New()
	newUser := &model.User{ID: uuid.New(), Email: "b@example.com", Name: "B"}

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	users.On("FindByEmail", mock.Anything, "b@example.com").Return(newUser, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, newUser.ID).Return(nil, nil)
	memberships.On("Create", mock.Anything, mock.AnythingOfType("*model.Membership")).Return(nil)

	membership, err := svc.AddMember(context.Background(), ownerID, projectID, "b@example.com", model.RoleMember)

	assert.NoError(t, err)
	assert.Equal(t, newUser.ID, membership.UserID)
	assert.Equal(t, model.RoleMember, membership.Role)
	memberships.AssertExpectations(t)
}

func TestAddMember_DuplicateIsConflict(t *testing.T) {
	// Повторное добавление не создаёт вторую запись членства.
	svc, projects, memberships, users := newTestProjectService()

	ownerID := uuid.New()
	projectID := uuid.New()
	existing := &model.User{ID: uuid.New(), Email: "b@example.com"}

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	users.On("FindByEmail", mock.Anything, "b@example.com").Return(existing, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, existing.ID).
		Return(membershipFor(projectID, existing.ID, model.RoleMember), nil)

	_, err := svc.AddMember(context.Background(), ownerID, projectID, "b@example.com", model.RoleAdmin)

	assert.ErrorIs(t, err, ErrConflict)
	memberships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddMember_UnknownRoleRejected(t *testing.T) {
	svc, projects, _, _ := newTestProjectService()

	_, err := svc.AddMember(context.Background(), uuid.New(), uuid.New(), "b@example.com", "viewer")

	assert.ErrorIs(t, err, ErrInvalidInput)
	projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAddMember_UnknownEmailIsNotFound(t *testing.T) {
	svc, projects, memberships, users := newTestProjectService()

	ownerID := uuid.New()
	projectID := uuid.New()
	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := svc.AddMember(context.Background(), ownerID, projectID, "ghost@example.com", model.RoleMember)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeMemberRole_LastOwnerCannotBeDemoted(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	ownerID := uuid.New()
	projectID := uuid.New()
	ownerMembership := membershipFor(projectID, ownerID, model.RoleOwner)

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).Return(ownerMembership, nil)
	memberships.On("CountByRole", mock.Anything, projectID, model.RoleOwner).Return(int64(1), nil)

	_, err := svc.ChangeMemberRole(context.Background(), ownerID, projectID, ownerID, model.RoleMember)

	assert.ErrorIs(t, err, ErrConflict)
	memberships.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeMemberRole_SecondOwnerUnblocksDemotion(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	ownerID := uuid.New()
	otherOwnerID := uuid.New()
	projectID := uuid.New()
	otherMembership := membershipFor(projectID, otherOwnerID, model.RoleOwner)

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, otherOwnerID).Return(otherMembership, nil)
	memberships.On("CountByRole", mock.Anything, projectID, model.RoleOwner).Return(int64(2), nil)
	memberships.On("UpdateRole", mock.Anything, otherMembership.ID, model.RoleAdmin).Return(nil)

	membership, err := svc.ChangeMemberRole(context.Background(), ownerID, projectID, otherOwnerID, model.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, membership.Role)
	memberships.AssertExpectations(t)
}

func TestRemoveMember_LastOwnerIsConflict(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	ownerID := uuid.New()
	adminID := uuid.New()
	projectID := uuid.New()

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, adminID).
		Return(membershipFor(projectID, adminID, model.RoleAdmin), nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, ownerID).
		Return(membershipFor(projectID, ownerID, model.RoleOwner), nil)
	memberships.On("CountByRole", mock.Anything, projectID, model.RoleOwner).Return(int64(1), nil)

	err := svc.RemoveMember(context.Background(), adminID, projectID, ownerID)

	assert.ErrorIs(t, err, ErrConflict)
	memberships.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemoveMember_PlainMember(t *testing.T) {
	svc, projects, memberships, _ := newTestProjectService()

	adminID := uuid.New()
	memberID := uuid.New()
	projectID := uuid.New()
	target := membershipFor(projectID, memberID, model.RoleMember)

	projects.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, adminID).
		Return(membershipFor(projectID, adminID, model.RoleAdmin), nil)
	memberships.On("GetByProjectAndUser", mock.Anything, projectID, memberID).Return(target, nil)
	memberships.On("Delete", mock.Anything, target.ID).Return(nil)

	err := svc.RemoveMember(context.Background(), adminID, projectID, memberID)

	assert.NoError(t, err)
	memberships.AssertExpectations(t)
}
