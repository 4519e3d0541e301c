package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// DeleteByID cascades: products referencing the user as admin or seller are
// deleted with it, and products referencing it as client have the reference
// cleared. The cascade is an explicit store-layer policy (see config).
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByRole returns the users holding the given role (reverse lookup).
	FindByRole(ctx context.Context, roleID string) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	DeleteByID(ctx context.Context, id string) error
}
