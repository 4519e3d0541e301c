package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// CreateUserInput carries the data needed to create a user. RoleID empty
// means no role.
type CreateUserInput struct {
	Email    string
	Password string
	RoleID   string
}

// UpdateUserInput carries a user update. The password is immutable through
// update: any supplied value is ignored and the stored hash retained, so
// there is no password field here at all. RoleID nil keeps the current role.
type UpdateUserInput struct {
	Email  string
	RoleID *string
}

// UserService defines use-case operations for users.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, roleID string) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
