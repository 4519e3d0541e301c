package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// RoleConstraintValidator enforces the product relationship invariants:
// admin must hold ADMIN, seller must hold SELLER, client (when set) must
// hold CLIENT. Set operations mutate the passed-in product only; persisting
// is a separate, explicit step the caller performs after all checks pass.
type RoleConstraintValidator struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleConstraintValidator(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *RoleConstraintValidator {
	return &RoleConstraintValidator{users: users, roles: roles, logger: logger}
}

// SetAdmin assigns the product's admin after verifying the user exists and
// holds the ADMIN role.
func (v *RoleConstraintValidator) SetAdmin(ctx context.Context, p *domain.Product, userID string) (domain.Result, error) {
	res, err := v.requireRole(ctx, userID, domain.RoleAdmin)
	if err != nil || !res.Valid() {
		return res, err
	}
	p.AdminID = userID
	return domain.OK(), nil
}

// SetSeller assigns the product's seller, requiring the SELLER role.
func (v *RoleConstraintValidator) SetSeller(ctx context.Context, p *domain.Product, userID string) (domain.Result, error) {
	res, err := v.requireRole(ctx, userID, domain.RoleSeller)
	if err != nil || !res.Valid() {
		return res, err
	}
	p.SellerID = userID
	return domain.OK(), nil
}

// SetClient assigns or clears the product's client. An empty userID clears
// the assignment unconditionally; this is the only role-optional relation.
func (v *RoleConstraintValidator) SetClient(ctx context.Context, p *domain.Product, userID string) (domain.Result, error) {
	if userID == "" {
		p.ClientID = ""
		return domain.OK(), nil
	}
	res, err := v.requireRole(ctx, userID, domain.RoleClient)
	if err != nil || !res.Valid() {
		return res, err
	}
	p.ClientID = userID
	return domain.OK(), nil
}

// ValidateProduct is the final cross-field check before persistence. Each
// reference is re-verified against the store rather than trusted from the
// in-memory product. Checks short-circuit in a fixed order: admin existence,
// admin role, seller existence, seller role, client existence, client role.
func (v *RoleConstraintValidator) ValidateProduct(ctx context.Context, p *domain.Product) (domain.Result, error) {
	if p.AdminID == "" {
		return v.reject(domain.Invalid("product must have an administrator")), nil
	}
	res, err := v.checkRole(ctx, p.AdminID, domain.RoleAdmin,
		"administrator user not found", "administrator must have ADMIN role")
	if err != nil || !res.Valid() {
		return res, err
	}

	if p.SellerID == "" {
		return v.reject(domain.Invalid("product must have a seller")), nil
	}
	res, err = v.checkRole(ctx, p.SellerID, domain.RoleSeller,
		"seller user not found", "seller must have SELLER role")
	if err != nil || !res.Valid() {
		return res, err
	}

	if p.ClientID != "" {
		res, err = v.checkRole(ctx, p.ClientID, domain.RoleClient,
			"client user not found", "client must have CLIENT role")
		if err != nil || !res.Valid() {
			return res, err
		}
	}

	return domain.OK(), nil
}

// requireRole verifies that the user exists and holds the expected role.
func (v *RoleConstraintValidator) requireRole(ctx context.Context, userID string, expected domain.RoleKind) (domain.Result, error) {
	if userID == "" {
		return v.reject(domain.Invalid("user id is required")), nil
	}
	return v.checkRole(ctx, userID, expected,
		fmt.Sprintf("user not found with id %s", userID),
		fmt.Sprintf("user must have %s role", expected))
}

func (v *RoleConstraintValidator) checkRole(ctx context.Context, userID string, expected domain.RoleKind, notFoundMsg, mismatchMsg string) (domain.Result, error) {
	user, err := v.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return v.reject(domain.NotFound(notFoundMsg)), nil
		}
		return domain.OK(), err
	}

	kind, err := v.roleKind(ctx, user)
	if err != nil {
		return domain.OK(), err
	}
	if kind != expected {
		return v.reject(domain.Invalid(mismatchMsg)), nil
	}
	return domain.OK(), nil
}

// roleKind resolves a user's stored role name to its closed enumeration. A
// user with no role, or a dangling role reference, maps to RoleUnknown.
func (v *RoleConstraintValidator) roleKind(ctx context.Context, u *domain.User) (domain.RoleKind, error) {
	if u.RoleID == "" {
		return domain.RoleUnknown, nil
	}
	role, err := v.roles.FindByID(ctx, u.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return domain.RoleUnknown, nil
		}
		return domain.RoleUnknown, err
	}
	return domain.KindOfRole(role.Name), nil
}

// reject records the failure in metrics and passes it through.
func (v *RoleConstraintValidator) reject(res domain.Result) domain.Result {
	reason := "role_mismatch"
	if res.Kind() == domain.FailureNotFound {
		reason = "not_found"
	}
	metrics.ValidationFailuresTotal.WithLabelValues(reason).Inc()
	v.logger.Debug().Str("reason", res.Reason()).Msg("role constraint rejected")
	return res
}
