package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// RoleService implements role CRUD. Role names are free-text, unique,
// non-blank; only ADMIN, SELLER, and CLIENT carry business meaning.
type RoleService struct {
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, logger: logger}
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	defer metrics.Time("role.create")()

	created, err := s.roles.Create(ctx, &domain.Role{Name: name})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create role")
		return nil, err
	}

	s.logger.Info().Str("role_id", created.ID).Str("name", created.Name).Msg("role created")
	return created, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.FindAll(ctx)
}

func (s *RoleService) Update(ctx context.Context, id string, name string) (*domain.Role, error) {
	defer metrics.Time("role.update")()

	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated := &domain.Role{ID: id, Name: name}
	if err := s.roles.Update(ctx, updated); err != nil {
		s.logger.Error().Err(err).Str("role_id", id).Msg("failed to update role")
		return nil, err
	}

	s.logger.Info().Str("role_id", id).Msg("role updated")
	return updated, nil
}

// Delete removes the role. With the role-cascade policy enabled the store
// also deletes every user holding it, and transitively their admin/seller
// products. Deliberately loud in the logs because of the blast radius.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	defer metrics.Time("role.delete")()

	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.roles.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("role_id", id).Msg("failed to delete role")
		return err
	}

	s.logger.Warn().Str("role_id", id).Msg("role deleted, cascade policy applied")
	return nil
}
