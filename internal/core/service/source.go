package service

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// StoreSource adapts the repositories to the projector's view.Source port,
// so projections resolve relation ids straight from the entity store.
type StoreSource struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	products ports.ProductRepository
}

func NewStoreSource(users ports.UserRepository, roles ports.RoleRepository, products ports.ProductRepository) *StoreSource {
	return &StoreSource{users: users, roles: roles, products: products}
}

func (s *StoreSource) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *StoreSource) RoleByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *StoreSource) UsersByRole(ctx context.Context, roleID string) ([]*domain.User, error) {
	return s.users.FindByRole(ctx, roleID)
}

func (s *StoreSource) ProductsByAdmin(ctx context.Context, userID string) ([]*domain.Product, error) {
	return s.products.FindByAdmin(ctx, userID)
}

func (s *StoreSource) ProductsBySeller(ctx context.Context, userID string) ([]*domain.Product, error) {
	return s.products.FindBySeller(ctx, userID)
}

func (s *StoreSource) ProductsByClient(ctx context.Context, userID string) ([]*domain.Product, error) {
	return s.products.FindByClient(ctx, userID)
}
