package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// ProductService implements product CRUD and the purchase/return workflow.
// Every mutation runs through the role-constraint validator before it is
// persisted; the validator mutates the in-memory product, persistence is
// the explicit final step here.
type ProductService struct {
	products  ports.ProductRepository
	users     ports.UserRepository
	validator *RoleConstraintValidator
	guard     ports.AssignmentGuard // optional; nil disables the lease
	logger    zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	users ports.UserRepository,
	validator *RoleConstraintValidator,
	guard ports.AssignmentGuard,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:  products,
		users:     users,
		validator: validator,
		guard:     guard,
		logger:    logger,
	}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, domain.Result, error) {
	defer metrics.Time("product.create")()

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
	}

	if res, err := s.validator.SetAdmin(ctx, product, input.AdminID); err != nil || !res.Valid() {
		return nil, res, err
	}
	if res, err := s.validator.SetSeller(ctx, product, input.SellerID); err != nil || !res.Valid() {
		return nil, res, err
	}
	if res, err := s.validator.SetClient(ctx, product, input.ClientID); err != nil || !res.Valid() {
		return nil, res, err
	}
	if res, err := s.validator.ValidateProduct(ctx, product); err != nil || !res.Valid() {
		return nil, res, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, domain.OK(), err
	}

	metrics.ProductsCreatedTotal.Inc()
	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, domain.OK(), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *ProductService) ListByAdmin(ctx context.Context, userID string) ([]*domain.Product, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.products.FindByAdmin(ctx, userID)
}

func (s *ProductService) ListBySeller(ctx context.Context, userID string) ([]*domain.Product, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.products.FindBySeller(ctx, userID)
}

func (s *ProductService) ListByClient(ctx context.Context, userID string) ([]*domain.Product, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.products.FindByClient(ctx, userID)
}

// Update replaces the product's own fields; relationship parameters are
// optional and keep the current assignment when absent. The full constraint
// check runs again before persisting.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, domain.Result, error) {
	defer metrics.Time("product.update")()

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.OK(), err
	}

	updated := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
	}

	if input.AdminID != nil {
		if res, err := s.validator.SetAdmin(ctx, updated, *input.AdminID); err != nil || !res.Valid() {
			return nil, res, err
		}
	} else {
		updated.AdminID = existing.AdminID
	}
	if input.SellerID != nil {
		if res, err := s.validator.SetSeller(ctx, updated, *input.SellerID); err != nil || !res.Valid() {
			return nil, res, err
		}
	} else {
		updated.SellerID = existing.SellerID
	}
	if input.ClientID != nil {
		if res, err := s.validator.SetClient(ctx, updated, *input.ClientID); err != nil || !res.Valid() {
			return nil, res, err
		}
	} else {
		updated.ClientID = existing.ClientID
	}

	if res, err := s.validator.ValidateProduct(ctx, updated); err != nil || !res.Valid() {
		return nil, res, err
	}

	if err := s.products.Update(ctx, updated); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, domain.OK(), err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, domain.OK(), nil
}

// Delete removes the product. Users referenced by it are never deleted.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	defer metrics.Time("product.delete")()

	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Warn().Str("product_id", id).Msg("product deleted")
	return nil
}

// AssignClient runs the purchase workflow: the product must be available and
// the user must hold the CLIENT role. The availability pre-check is done
// here, not in the store, and re-done under the assignment lease.
func (s *ProductService) AssignClient(ctx context.Context, productID, clientID string) (*domain.Product, domain.Result, error) {
	defer metrics.Time("product.assign_client")()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.OK(), err
	}
	if !product.Available() {
		return nil, domain.OK(), domain.ErrClientAlreadyAssigned
	}

	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, productID)
		if err != nil {
			return nil, domain.OK(), err
		}
		if !ok {
			return nil, domain.OK(), domain.ErrClientAlreadyAssigned
		}
		defer func() {
			if err := s.guard.Release(ctx, productID); err != nil {
				s.logger.Warn().Err(err).Str("product_id", productID).Msg("failed to release assignment lease")
			}
		}()

		// Re-read under the lease: another request may have bought the
		// product between our pre-check and the acquire.
		product, err = s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, domain.OK(), err
		}
		if !product.Available() {
			return nil, domain.OK(), domain.ErrClientAlreadyAssigned
		}
	}

	if res, err := s.validator.SetClient(ctx, product, clientID); err != nil || !res.Valid() {
		return nil, res, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to assign client")
		return nil, domain.OK(), err
	}

	metrics.ProductsSoldTotal.Inc()
	s.logger.Info().Str("product_id", productID).Str("client_id", clientID).Msg("client assigned")
	return product, domain.OK(), nil
}

// RemoveClient runs the return workflow: the client reference is cleared
// unconditionally. Removing from an already available product succeeds as a
// no-op.
func (s *ProductService) RemoveClient(ctx context.Context, productID string) (*domain.Product, error) {
	defer metrics.Time("product.remove_client")()

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.ClientID == "" {
		return product, nil
	}

	product.ClientID = ""
	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to remove client")
		return nil, err
	}

	metrics.ProductsReturnedTotal.Inc()
	s.logger.Info().Str("product_id", productID).Msg("client removed, product available again")
	return product, nil
}
