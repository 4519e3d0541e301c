package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// RoleRepository defines persistence operations for roles.
//
// DeleteByID may cascade to the users holding the role (and transitively to
// their admin/seller products) when the store is configured with the
// role-cascade policy enabled. High blast radius; see DESIGN.md.
type RoleRepository interface {
	Create(ctx context.Context, r *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]*domain.Role, error)
	Update(ctx context.Context, r *domain.Role) error
	DeleteByID(ctx context.Context, id string) error
}
