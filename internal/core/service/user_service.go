package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// UserService implements user CRUD. Passwords are bcrypt-hashed on create
// and immutable afterwards: update ignores any supplied password and keeps
// the stored hash.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	defer metrics.Time("user.create")()

	if input.RoleID != "" {
		if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		RoleID:       input.RoleID,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// ListByRole returns the users holding a role; the role must exist.
func (s *UserService) ListByRole(ctx context.Context, roleID string) ([]*domain.User, error) {
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.users.FindByRole(ctx, roleID)
}

// Update replaces the user's email and, when a role id is supplied, its
// role. The stored password hash is always retained.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	defer metrics.Time("user.update")()

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roleID := existing.RoleID
	if input.RoleID != nil {
		if *input.RoleID != "" {
			if _, err := s.roles.FindByID(ctx, *input.RoleID); err != nil {
				return nil, err
			}
		}
		roleID = *input.RoleID
	}

	updated := &domain.User{
		ID:           id,
		Email:        input.Email,
		PasswordHash: existing.PasswordHash,
		RoleID:       roleID,
	}
	if err := s.users.Update(ctx, updated); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete removes the user. The store cascades: products where the user is
// admin or seller are deleted, client references are cleared.
func (s *UserService) Delete(ctx context.Context, id string) error {
	defer metrics.Time("user.delete")()

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}

	s.logger.Warn().Str("user_id", id).Msg("user deleted")
	return nil
}
