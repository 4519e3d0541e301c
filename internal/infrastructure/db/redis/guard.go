package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaseTTL = 10 * time.Second

// AssignmentGuard serializes client assignments per product with a Redis
// SET NX lease. Key format: assign:<product_id>. The TTL bounds how long a
// crashed request can block a product.
type AssignmentGuard struct {
	client *redis.Client
}

// NewAssignmentGuard creates an AssignmentGuard wrapping the given client.
func NewAssignmentGuard(client *redis.Client) *AssignmentGuard {
	return &AssignmentGuard{client: client}
}

// Acquire takes the assignment lease for a product. ok=false means another
// assignment currently holds it.
func (g *AssignmentGuard) Acquire(ctx context.Context, productID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(productID), "1", leaseTTL).Result()
	if err != nil {
		return false, fmt.Errorf("assignment lease: %w", err)
	}
	return ok, nil
}

// Release frees the lease early; expiry covers the crash path.
func (g *AssignmentGuard) Release(ctx context.Context, productID string) error {
	return g.client.Del(ctx, g.key(productID)).Err()
}

func (g *AssignmentGuard) key(productID string) string {
	return fmt.Sprintf("assign:%s", productID)
}
