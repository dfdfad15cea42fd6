package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

// ProjectService owns the project lifecycle and membership management.
type ProjectService struct {
	projects    ProjectStore
	memberships MembershipStore
	users       UserStore
	authorizer  *Authorizer
}

func NewProjectService(projects ProjectStore, memberships MembershipStore, users UserStore, authorizer *Authorizer) *ProjectService {
	return &ProjectService{
		projects:    projects,
		memberships: memberships,
		users:       users,
		authorizer:  authorizer,
	}
}

// Create makes a new project with the creator as its first owner. Project
// and membership are inserted as one atomic unit.
func (s *ProjectService) Create(ctx context.Context, actorID uuid.UUID, name, description string) (*model.Project, error) {
	project := &model.Project{
		Name:        name,
		Description: description,
	}
	if err := s.projects.CreateWithOwner(ctx, project, actorID); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// List returns the projects the actor is a member of.
func (s *ProjectService) List(ctx context.Context, actorID uuid.UUID) ([]model.Project, error) {
	return s.projects.GetForUser(ctx, actorID)
}

func (s *ProjectService) Get(ctx context.Context, actorID, projectID uuid.UUID) (*model.Project, error) {
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
	return project, nil
}

// Update renames a project; requires admin.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uuid.UUID, name, description string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleAdmin); err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes the project and cascades to all descendants; owner only.
func (s *ProjectService) Delete(ctx context.Context, actorID, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleOwner); err != nil {
		return err
	}
	return s.projects.DeleteCascade(ctx, projectID)
}

// Members lists the project's memberships; any member may look.
func (s *ProjectService) Members(ctx context.Context, actorID, projectID uuid.UUID) ([]model.Membership, error) {
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
	return s.memberships.GetByProject(ctx, projectID)
}

// AddMember adds a user to the project by email; requires admin. Adding a
// user who is already a member is a conflict, never a duplicate row.
func (s *ProjectService) AddMember(ctx context.Context, actorID, projectID uuid.UUID, email, role string) (*model.Membership, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, ErrInvalidInput)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}

	existing, err := s.memberships.GetByProjectAndUser(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user is already a member: %w", ErrConflict)
	}

	membership := &model.Membership{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      role,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return membership, nil
}

// ChangeMemberRole updates a member's role; requires admin. Demoting the
// only owner would leave the project ownerless and fails with a conflict.
func (s *ProjectService) ChangeMemberRole(ctx context.Context, actorID, projectID, memberUserID uuid.UUID, role string) (*model.Membership, error) {
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, ErrInvalidInput)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleAdmin); err != nil {
		return nil, err
	}

	membership, err := s.memberships.GetByProjectAndUser(ctx, projectID, memberUserID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("membership: %w", ErrNotFound)
	}

	if membership.Role == model.RoleOwner && role != model.RoleOwner {
		owners, err := s.memberships.CountByRole(ctx, projectID, model.RoleOwner)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, fmt.Errorf("project must keep at least one owner: %w", ErrConflict)
		}
	}

	if err := s.memberships.UpdateRole(ctx, membership.ID, role); err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}
	membership.Role = role
	return membership, nil
}

// RemoveMember drops a user's membership; requires admin. Removing the only
// owner fails with a conflict. Tasks assigned to the removed member keep
// their stale assignee; consumers treat those as soft references.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, memberUserID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleAdmin); err != nil {
		return err
	}

	membership, err := s.memberships.GetByProjectAndUser(ctx, projectID, memberUserID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("membership: %w", ErrNotFound)
	}

	if membership.Role == model.RoleOwner {
		owners, err := s.memberships.CountByRole(ctx, projectID, model.RoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return fmt.Errorf("project must keep at least one owner: %w", ErrConflict)
		}
	}

	return s.memberships.Delete(ctx, membership.ID)
}
