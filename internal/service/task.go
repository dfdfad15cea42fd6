package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

type TaskService struct {
	tasks       TaskStore
	labels      LabelStore
	users       UserStore
	memberships MembershipStore
	resolver    *Resolver
	authorizer  *Authorizer
}

func NewTaskService(tasks TaskStore, labels LabelStore, users UserStore, memberships MembershipStore, resolver *Resolver, authorizer *Authorizer) *TaskService {
	return &TaskService{
		tasks:       tasks,
		labels:      labels,
		users:       users,
		memberships: memberships,
		resolver:    resolver,
		authorizer:  authorizer,
	}
}

// CreateTaskInput carries the task create payload. Nil pointers mean
// "not provided".
type CreateTaskInput struct {
	ColumnID    uuid.UUID
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
	Position    *int
}

// UpdateTaskInput carries a partial task update; nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	AssigneeID  *uuid.UUID
	Position    *int
}

// checkAssignee verifies the assignee holds a membership in the project at
// the moment of assignment. Membership is not re-validated afterwards.
func (s *TaskService) checkAssignee(ctx context.Context, projectID, assigneeID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("assignee does not exist: %w", ErrInvalidInput)
	}
	membership, err := s.memberships.GetByProjectAndUser(ctx, projectID, assigneeID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("assignee is not a project member: %w", ErrInvalidInput)
	}
	return nil
}

// Create adds a task to a column; any member may. A nil position appends
// after the column's last task.
func (s *TaskService) Create(ctx context.Context, actorID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	if !model.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("priority %q: %w", in.Priority, ErrInvalidInput)
	}

	projectID, err := s.resolver.ProjectForColumn(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	if in.AssigneeID != nil {
		if err := s.checkAssignee(ctx, projectID, *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	maxPosition, err := s.tasks.GetMaxPosition(ctx, in.ColumnID)
	if err != nil {
		return nil, err
	}
	pos, err := resolvePosition(in.Position, maxPosition)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
		CreatedByID: actorID,
		Position:    pos,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListByColumn returns the column's tasks in display order.
func (s *TaskService) ListByColumn(ctx context.Context, actorID, columnID uuid.UUID) ([]model.Task, error) {
	projectID, err := s.resolver.ProjectForColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.tasks.GetByColumnID(ctx, columnID)
}

func (s *TaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update; any member may, creator included or not.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		if !model.ValidPriority(*in.Priority) {
			return nil, fmt.Errorf("priority %q: %w", *in.Priority, ErrInvalidInput)
		}
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.AssigneeID != nil {
		if err := s.checkAssignee(ctx, projectID, *in.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = in.AssigneeID
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", ErrInvalidInput)
		}
		task.Position = *in.Position
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task with its comments and label links; any member may.
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return err
	}
	return s.tasks.DeleteCascade(ctx, taskID)
}

// Move puts the task into a column at a position (drag-and-drop). The actor
// must be a member of both the source and the destination project; only
// after both checks pass is anything written, so a failed move changes
// nothing.
func (s *TaskService) Move(ctx context.Context, actorID, taskID, newColumnID uuid.UUID, position int) (*model.Task, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must not be negative: %w", ErrInvalidInput)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}

	sourceProject, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, sourceProject, model.RoleMember); err != nil {
		return nil, err
	}

	destProject, err := s.resolver.ProjectForColumn(ctx, newColumnID)
	if err != nil {
		return nil, err
	}
	if destProject != sourceProject {
		if _, err := s.authorizer.Authorize(ctx, actorID, destProject, model.RoleMember); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Move(ctx, taskID, newColumnID, position); err != nil {
		return nil, fmt.Errorf("move task: %w", err)
	}
	task.ColumnID = newColumnID
	task.Position = position
	return task, nil
}

// Assign sets the task's assignee; the assignee must be a project member.
func (s *TaskService) Assign(ctx context.Context, actorID, taskID, assigneeID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, projectID, assigneeID); err != nil {
		return nil, err
	}

	task.AssigneeID = &assigneeID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	return task, nil
}

// Unassign clears the task's assignee.
func (s *TaskService) Unassign(ctx context.Context, actorID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	task.AssigneeID = nil
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("unassign task: %w", err)
	}
	return task, nil
}

// AttachLabel links a label from the task's own project to the task.
func (s *TaskService) AttachLabel(ctx context.Context, actorID, taskID, labelID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return err
	}

	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		return err
	}
	if label == nil {
		return fmt.Errorf("label: %w", ErrNotFound)
	}
	if label.ProjectID != projectID {
		return fmt.Errorf("label belongs to another project: %w", ErrInvalidInput)
	}

	return s.tasks.AddLabel(ctx, taskID, labelID)
}

// DetachLabel unlinks a label from the task.
func (s *TaskService) DetachLabel(ctx context.Context, actorID, taskID, labelID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return err
	}
	return s.tasks.RemoveLabel(ctx, taskID, labelID)
}

// Labels lists the labels attached to a task.
func (s *TaskService) Labels(ctx context.Context, actorID, taskID uuid.UUID) ([]model.Label, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForColumn(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.labels.GetByTaskID(ctx, taskID)
}
