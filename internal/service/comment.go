package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

type CommentService struct {
	comments   CommentStore
	resolver   *Resolver
	authorizer *Authorizer
}

func NewCommentService(comments CommentStore, resolver *Resolver, authorizer *Authorizer) *CommentService {
	return &CommentService{
		comments:   comments,
		resolver:   resolver,
		authorizer: authorizer,
	}
}

// Create adds a comment to a task; any member may.
func (s *CommentService) Create(ctx context.Context, actorID, taskID uuid.UUID, content string) (*model.Comment, error) {
	projectID, err := s.resolver.ProjectForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		TaskID:   taskID,
		AuthorID: actorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByTask returns the task's comments ordered by creation time.
func (s *CommentService) ListByTask(ctx context.Context, actorID, taskID uuid.UUID) ([]model.Comment, error) {
	projectID, err := s.resolver.ProjectForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	return s.comments.GetByTaskID(ctx, taskID)
}

// Update edits a comment. Besides project membership the actor must be the
// comment's author; that is a separate predicate, not a role tier.
func (s *CommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, fmt.Errorf("comment: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForTask(ctx, comment.TaskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, fmt.Errorf("only the author can edit a comment: %w", ErrForbidden)
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment; author only, same predicate as Update.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return fmt.Errorf("comment: %w", ErrNotFound)
	}
	projectID, err := s.resolver.ProjectForTask(ctx, comment.TaskID)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, actorID, projectID, model.RoleMember); err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return fmt.Errorf("only the author can delete a comment: %w", ErrForbidden)
	}
	return s.comments.Delete(ctx, commentID)
}
