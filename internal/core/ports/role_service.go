package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// RoleService defines use-case operations for roles.
type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Update(ctx context.Context, id string, name string) (*domain.Role, error)
	// Delete removes the role. With the role-cascade policy enabled the users
	// holding it (and their admin/seller products) go with it.
	Delete(ctx context.Context, id string) error
}
