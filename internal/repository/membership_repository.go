package repository

import (
	"context"
	"errors"

	"projectboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// GetByProjectAndUser возвращает членство пользователя в проекте
// или (nil, nil), если доступа нет.
func (r *MembershipRepository) GetByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByProject возвращает всех участников проекта вместе с пользователями
func (r *MembershipRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Membership{}, "id = ?", id).Error
}

// CountByRole считает участников проекта с указанной ролью
func (r *MembershipRepository) CountByRole(ctx context.Context, projectID uuid.UUID, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("project_id = ? AND role = ?", projectID, role).
		Count(&count).Error
	return count, err
}
