package service

import (
	"context"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

// Store interfaces consumed by the services. The GORM repositories in
// internal/repository satisfy them; tests substitute mocks. A GetByID
// returning (nil, nil) means the record does not exist.

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type ProjectStore interface {
	CreateWithOwner(ctx context.Context, project *model.Project, ownerID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type MembershipStore interface {
	Create(ctx context.Context, membership *model.Membership) error
	GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*model.Membership, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.Membership, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, projectID uuid.UUID, role string) (int64, error)
}

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	GetMaxPosition(ctx context.Context, projectID uuid.UUID) (int, error)
}

type ColumnStore interface {
	Create(ctx context.Context, column *model.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	Update(ctx context.Context, column *model.Column) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByColumnID(ctx context.Context, columnID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, taskID, columnID uuid.UUID, position int) error
	AddLabel(ctx context.Context, taskID, labelID uuid.UUID) error
	RemoveLabel(ctx context.Context, taskID, labelID uuid.UUID) error
	GetMaxPosition(ctx context.Context, columnID uuid.UUID) (int, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LabelStore interface {
	Create(ctx context.Context, label *model.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Label, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Label, error)
	Update(ctx context.Context, label *model.Label) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetTasksWithLabel(ctx context.Context, labelID uuid.UUID) ([]model.Task, error)
}
