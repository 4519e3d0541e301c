package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a product. AdminID
// and SellerID are required; ClientID empty means the product starts
// available.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Stock       int
	AdminID     string
	SellerID    string
	ClientID    string
}

// UpdateProductInput carries a product update. Nil relation ids keep the
// current assignment.
type UpdateProductInput struct {
	Name        string
	Price       float64
	Description string
	Stock       int
	AdminID     *string
	SellerID    *string
	ClientID    *string
}

// ProductService defines use-case operations for products. Mutations return
// a domain.Result for expected business-rule failures (role mismatch,
// dangling user reference) alongside the error channel reserved for
// infrastructure faults.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, domain.Result, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByAdmin(ctx context.Context, userID string) ([]*domain.Product, error)
	ListBySeller(ctx context.Context, userID string) ([]*domain.Product, error)
	ListByClient(ctx context.Context, userID string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, domain.Result, error)
	Delete(ctx context.Context, id string) error

	// AssignClient marks a product as sold. Returns
	// domain.ErrClientAlreadyAssigned when a client is already set.
	AssignClient(ctx context.Context, productID, clientID string) (*domain.Product, domain.Result, error)
	// RemoveClient clears the client unconditionally; a no-op on an already
	// available product.
	RemoveClient(ctx context.Context, productID string) (*domain.Product, error)
}
