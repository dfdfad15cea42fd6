package model

import (
	"time"

	"github.com/google/uuid"
)

// Membership связывает пользователя с проектом и его ролью
type Membership struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_memberships_project_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_memberships_project_user"`
	Role      string    `gorm:"not null;check:role IN ('owner', 'admin', 'member')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Project Project `gorm:"foreignKey:ProjectID"`
	User    User    `gorm:"foreignKey:UserID"`
}

// Роли участников проекта
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// roleRank orders roles: any action open to "member" is open to every role,
// "admin" actions need admin or owner.
var roleRank = map[string]int{
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// ValidRole reports whether role is one of the three known role strings.
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast reports whether role satisfies the required tier.
func RoleAtLeast(role, required string) bool {
	return roleRank[role] >= roleRank[required]
}
