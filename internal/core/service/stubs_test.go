package service

import (
	"context"
	"fmt"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) FindByRole(_ context.Context, roleID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.RoleID == roleID {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubRoleRepo struct {
	byID map[string]*domain.Role
	seq  int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{byID: make(map[string]*domain.Role)}
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.seq++
	clone := *role
	clone.ID = fmt.Sprintf("role-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.byID))
	for _, role := range r.byID {
		clone := *role
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := r.byID[role.ID]; !ok {
		return domain.ErrRoleNotFound
	}
	clone := *role
	r.byID[role.ID] = &clone
	return nil
}

func (r *stubRoleRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProductRepo struct {
	byID map[string]*domain.Product
	seq  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("product-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) FindByAdmin(_ context.Context, userID string) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.AdminID == userID }), nil
}

func (r *stubProductRepo) FindBySeller(_ context.Context, userID string) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.SellerID == userID }), nil
}

func (r *stubProductRepo) FindByClient(_ context.Context, userID string) ([]*domain.Product, error) {
	return r.filter(func(p *domain.Product) bool { return p.ClientID == userID }), nil
}

func (r *stubProductRepo) filter(keep func(*domain.Product) bool) []*domain.Product {
	var out []*domain.Product
	for _, p := range r.byID {
		if keep(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixture helpers
// ---------------------------------------------------------------------------

// seedRoles registers the three canonical roles and returns their ids.
func seedRoles(roles *stubRoleRepo) (adminRole, sellerRole, clientRole string) {
	a, _ := roles.Create(context.Background(), &domain.Role{Name: domain.RoleNameAdmin})
	s, _ := roles.Create(context.Background(), &domain.Role{Name: domain.RoleNameSeller})
	c, _ := roles.Create(context.Background(), &domain.Role{Name: domain.RoleNameClient})
	return a.ID, s.ID, c.ID
}

// seedUser stores a user with the given role and returns its id.
func seedUser(users *stubUserRepo, email, roleID string) string {
	u, _ := users.Create(context.Background(), &domain.User{Email: email, RoleID: roleID})
	return u.ID
}
