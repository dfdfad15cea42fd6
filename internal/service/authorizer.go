package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/model"
)

// Authorizer decides whether a principal may act inside a project. The
// returned membership is handed to the lifecycle operation that asked, so
// one lookup per operation; it is never cached across operations.
type Authorizer struct {
	memberships MembershipStore
}

func NewAuthorizer(memberships MembershipStore) *Authorizer {
	return &Authorizer{memberships: memberships}
}

// Authorize fetches the principal's membership in the project and checks it
// against the required tier. No membership or an insufficient role is
// ErrForbidden in both cases: a denial must not reveal whether the project
// exists. Callers verify the addressed resource exists before calling.
func (a *Authorizer) Authorize(ctx context.Context, userID, projectID uuid.UUID, requiredRole string) (*model.Membership, error) {
	membership, err := a.memberships.GetByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	if membership == nil {
		return nil, ErrForbidden
	}
	if !model.RoleAtLeast(membership.Role, requiredRole) {
		return nil, ErrForbidden
	}
	return membership, nil
}
