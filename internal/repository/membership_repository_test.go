package repository_test

import (
	"context"
	"testing"

	"projectboard/internal/model"
	"projectboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMembershipRepository_GetByProjectAndUser_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMembershipRepository(gormDB)

	membershipID := uuid.New()
	projectID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "memberships" WHERE project_id = .* AND user_id = .*`).
		WithArgs(projectID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "role"}).
			AddRow(membershipID.String(), projectID.String(), userID.String(), model.RoleAdmin))

	// Act
	membership, err := repo.GetByProjectAndUser(context.Background(), projectID, userID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, membership)
	assert.Equal(t, model.RoleAdmin, membership.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_GetByProjectAndUser_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMembershipRepository(gormDB)

	projectID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "memberships" WHERE project_id = .* AND user_id = .*`).
		WithArgs(projectID, userID).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	membership, err := repo.GetByProjectAndUser(context.Background(), projectID, userID)

	// Assert: отсутствие членства - не ошибка
	assert.NoError(t, err)
	assert.Nil(t, membership)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_CountByRole(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMembershipRepository(gormDB)

	projectID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships" WHERE project_id = .* AND role = .*`).
		WithArgs(projectID, model.RoleOwner).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Act
	count, err := repo.CountByRole(context.Background(), projectID, model.RoleOwner)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_UpdateRole(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	repo := repository.NewMembershipRepository(gormDB)

	membershipID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "memberships" SET "role"=.*`).
		WithArgs(model.RoleAdmin, membershipID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := repo.UpdateRole(context.Background(), membershipID, model.RoleAdmin)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
