package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products, including
// the reverse lookups by relationship that back the derived collections on
// users.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByAdmin(ctx context.Context, userID string) ([]*domain.Product, error)
	FindBySeller(ctx context.Context, userID string) ([]*domain.Product, error)
	FindByClient(ctx context.Context, userID string) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	DeleteByID(ctx context.Context, id string) error
}
