package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/core/view"
)

// ProductAssemblyService builds the endpoint representations whose shape
// depends on business state rather than a single static view.
type ProductAssemblyService struct {
	products  ports.ProductRepository
	users     ports.UserRepository
	roles     ports.RoleRepository
	projector *view.Projector
	logger    zerolog.Logger
}

func NewProductAssemblyService(
	products ports.ProductRepository,
	users ports.UserRepository,
	roles ports.RoleRepository,
	projector *view.Projector,
	logger zerolog.Logger,
) *ProductAssemblyService {
	return &ProductAssemblyService{
		products:  products,
		users:     users,
		roles:     roles,
		projector: projector,
		logger:    logger,
	}
}

// AvailableProducts projects every product without a client at the summary
// tier. The client field is forced to explicit null even if the entity
// carries stale state.
func (s *ProductAssemblyService) AvailableProducts(ctx context.Context) ([]map[string]any, error) {
	defer metrics.Time("assembly.available_products")()

	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(all))
	for _, p := range all {
		if !p.Available() {
			continue
		}
		m, err := s.projector.Product(ctx, p, view.ProductSummary)
		if err != nil {
			return nil, err
		}
		m["client"] = nil
		out = append(out, m)
	}
	return out, nil
}

// RoleBasedProducts projects all products as seen by the given user's role.
func (s *ProductAssemblyService) RoleBasedProducts(ctx context.Context, userID string) ([]map[string]any, error) {
	defer metrics.Time("assembly.role_based_products")()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roleName, err := s.roleName(ctx, user)
	if err != nil {
		return nil, err
	}

	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(all))
	for _, p := range all {
		m, err := s.RoleBasedProduct(ctx, p, roleName)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// RoleBasedProduct applies the information-partition policy: ADMIN sees all
// relations, SELLER sees admin and client but not itself, CLIENT sees seller
// only, and any other role gets the bare product fields. Relations outside
// the requester's slice are omitted entirely, not nulled.
func (s *ProductAssemblyService) RoleBasedProduct(ctx context.Context, p *domain.Product, roleName string) (map[string]any, error) {
	if p == nil {
		return nil, nil
	}

	switch domain.KindOfRole(roleName) {
	case domain.RoleAdmin:
		return s.projector.Product(ctx, p, view.ProductDetail)

	case domain.RoleSeller:
		m, err := s.projector.Product(ctx, p, view.ProductBasic)
		if err != nil {
			return nil, err
		}
		if err := s.attachUser(ctx, m, "admin", p.AdminID); err != nil {
			return nil, err
		}
		if err := s.attachUser(ctx, m, "client", p.ClientID); err != nil {
			return nil, err
		}
		return m, nil

	case domain.RoleClient:
		m, err := s.projector.Product(ctx, p, view.ProductBasic)
		if err != nil {
			return nil, err
		}
		if err := s.attachUser(ctx, m, "seller", p.SellerID); err != nil {
			return nil, err
		}
		return m, nil

	default:
		return s.projector.Product(ctx, p, view.ProductBasic)
	}
}

// BusinessSummary aggregates totals and per-admin / per-seller groupings.
func (s *ProductAssemblyService) BusinessSummary(ctx context.Context) (*ports.BusinessSummary, error) {
	defer metrics.Time("assembly.business_summary")()

	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ports.BusinessSummary{
		TotalProducts:    len(all),
		ProductsByAdmin:  make(map[string]int),
		ProductsBySeller: make(map[string]int),
	}

	emails := make(map[string]string) // user id → email, "" for dangling refs
	for _, p := range all {
		if p.Available() {
			summary.AvailableProducts++
		} else {
			summary.SoldProducts++
		}
		if email, err := s.emailOf(ctx, emails, p.AdminID); err != nil {
			return nil, err
		} else if email != "" {
			summary.ProductsByAdmin[email]++
		}
		if email, err := s.emailOf(ctx, emails, p.SellerID); err != nil {
			return nil, err
		} else if email != "" {
			summary.ProductsBySeller[email]++
		}
	}
	return summary, nil
}

// attachUser adds a nested user projection under key when the reference is
// set. Dangling references are skipped rather than failing the response.
func (s *ProductAssemblyService) attachUser(ctx context.Context, m map[string]any, key, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	nested, err := s.projector.User(ctx, u, view.UserSummary)
	if err != nil {
		return err
	}
	m[key] = nested
	return nil
}

// roleName resolves a user's stored role name, "UNKNOWN" when the user has
// no role or the reference dangles.
func (s *ProductAssemblyService) roleName(ctx context.Context, u *domain.User) (string, error) {
	if u.RoleID == "" {
		return "UNKNOWN", nil
	}
	role, err := s.roles.FindByID(ctx, u.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return "UNKNOWN", nil
		}
		return "", err
	}
	return role.Name, nil
}

// emailOf resolves and memoizes a user's email; dangling refs resolve to "".
func (s *ProductAssemblyService) emailOf(ctx context.Context, cache map[string]string, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	if email, ok := cache[userID]; ok {
		return email, nil
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			cache[userID] = ""
			return "", nil
		}
		return "", err
	}
	cache[userID] = u.Email
	return u.Email, nil
}
