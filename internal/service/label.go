package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

type LabelService struct {
	labels     LabelStore
	projects   ProjectStore
	authorizer *Authorizer
}

func NewLabelService(labels LabelStore, projects ProjectStore, authorizer *Authorizer) *LabelService {
	return &LabelService{
		labels:     labels,
		projects:   projects,
		authorizer: authorizer,
	}
}

// Create adds a label to a project's label set; any member may.
func (s *LabelService) Create(ctx context.Context, actorID, projectID uuid.UUID, name, color string) (*model.Label, error) {
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

	label := &model.Label{
		ProjectID: projectID,
		Name:      name,
		Color:     color,
	}
	if err := s.labels.Create(ctx, label); err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}
	return label, nil
}

// ListByProject returns the project's label set.
func (s *LabelService) ListByProject(ctx context.Context, actorID, projectID uuid.UUID) ([]model.Label, error) {
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
	return s.labels.GetByProjectID(ctx, projectID)
}

func (s *LabelService) Get(ctx context.Context, actorID, labelID uuid.UUID) (*model.Label, error) {
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, fmt.Errorf("label: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, label.ProjectID, model.RoleMember); err != nil {
		return nil, err
	}
	return label, nil
}

// Update renames or recolors a label; any member may.
func (s *LabelService) Update(ctx context.Context, actorID, labelID uuid.UUID, name, color string) (*model.Label, error) {
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, fmt.Errorf("label: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, label.ProjectID, model.RoleMember); err != nil {
		return nil, err
	}

	if name != "" {
		label.Name = name
	}
	if color != "" {
		label.Color = color
	}
	if err := s.labels.Update(ctx, label); err != nil {
		return nil, fmt.Errorf("update label: %w", err)
	}
	return label, nil
}

// Delete removes a label and detaches it from every task; any member may.
func (s *LabelService) Delete(ctx context.Context, actorID, labelID uuid.UUID) error {
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		return err
	}
	if label == nil {
		return fmt.Errorf("label: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, label.ProjectID, model.RoleMember); err != nil {
		return err
	}
	return s.labels.Delete(ctx, labelID)
}

// Tasks lists the tasks carrying a label.
func (s *LabelService) Tasks(ctx context.Context, actorID, labelID uuid.UUID) ([]model.Task, error) {
	label, err := s.labels.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, fmt.Errorf("label: %w", ErrNotFound)
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, label.ProjectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.labels.GetTasksWithLabel(ctx, labelID)
}
