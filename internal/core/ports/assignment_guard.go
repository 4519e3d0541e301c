package ports

import "context"

// AssignmentGuard serializes concurrent client assignments to one product.
// The core's check-then-set on Product.client is not atomic; the guard
// narrows that race at the infrastructure boundary without the core
// depending on how (the default implementation is a redis SET NX lease).
type AssignmentGuard interface {
	// Acquire takes the assignment lease for a product. ok=false means
	// another assignment is in flight — treat as a conflict.
	Acquire(ctx context.Context, productID string) (ok bool, err error)
	Release(ctx context.Context, productID string) error
}
