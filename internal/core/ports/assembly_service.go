package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// BusinessSummary aggregates product counts for the business dashboard.
// Grouping keys are user emails; products with a dangling admin or seller
// reference are excluded from the respective grouping.
type BusinessSummary struct {
	TotalProducts     int            `json:"totalProducts"`
	AvailableProducts int            `json:"availableProducts"`
	SoldProducts      int            `json:"soldProducts"`
	ProductsByAdmin   map[string]int `json:"productsByAdmin"`
	ProductsBySeller  map[string]int `json:"productsBySeller"`
}

// AssemblyService builds response representations with bespoke shaping rules
// that no single static view expresses.
type AssemblyService interface {
	// AvailableProducts projects every product without a client, with the
	// client field forced to explicit null regardless of entity state.
	AvailableProducts(ctx context.Context) ([]map[string]any, error)
	// RoleBasedProducts projects all products as seen by the given user's
	// role: ADMIN sees all relations, SELLER sees admin+client, CLIENT sees
	// seller only, anything else gets bare product fields.
	RoleBasedProducts(ctx context.Context, userID string) ([]map[string]any, error)
	// RoleBasedProduct applies the same partition policy to one product.
	RoleBasedProduct(ctx context.Context, p *domain.Product, roleName string) (map[string]any, error)
	BusinessSummary(ctx context.Context) (*BusinessSummary, error)
}
