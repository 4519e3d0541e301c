package view

import (
	"context"
	"testing"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// stubSource resolves relations from fixed maps, mirroring the repository
// lookups the real Source adapter performs.
type stubSource struct {
	users    map[string]*domain.User
	roles    map[string]*domain.Role
	products []*domain.Product
}

func (s *stubSource) UserByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubSource) RoleByID(_ context.Context, id string) (*domain.Role, error) {
	r, ok := s.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return r, nil
}

func (s *stubSource) UsersByRole(_ context.Context, roleID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		if u.RoleID == roleID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubSource) ProductsByAdmin(_ context.Context, userID string) ([]*domain.Product, error) {
	return s.filter(func(p *domain.Product) bool { return p.AdminID == userID }), nil
}

func (s *stubSource) ProductsBySeller(_ context.Context, userID string) ([]*domain.Product, error) {
	return s.filter(func(p *domain.Product) bool { return p.SellerID == userID }), nil
}

func (s *stubSource) ProductsByClient(_ context.Context, userID string) ([]*domain.Product, error) {
	return s.filter(func(p *domain.Product) bool { return p.ClientID == userID }), nil
}

func (s *stubSource) filter(keep func(*domain.Product) bool) []*domain.Product {
	var out []*domain.Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func newFixture() (*Projector, *stubSource) {
	src := &stubSource{
		users: map[string]*domain.User{
			"u-admin":  {ID: "u-admin", Email: "admin@shop.test", PasswordHash: "$2a$10$secret", RoleID: "r-admin"},
			"u-seller": {ID: "u-seller", Email: "seller@shop.test", PasswordHash: "$2a$10$secret", RoleID: "r-seller"},
			"u-client": {ID: "u-client", Email: "client@shop.test", PasswordHash: "$2a$10$secret", RoleID: "r-client"},
		},
		roles: map[string]*domain.Role{
			"r-admin":  {ID: "r-admin", Name: domain.RoleNameAdmin},
			"r-seller": {ID: "r-seller", Name: domain.RoleNameSeller},
			"r-client": {ID: "r-client", Name: domain.RoleNameClient},
		},
		products: []*domain.Product{
			{ID: "p-1", Name: "Keyboard", Price: 49.9, Stock: 5, AdminID: "u-admin", SellerID: "u-seller"},
			{ID: "p-2", Name: "Mouse", Price: 19.9, Stock: 3, AdminID: "u-admin", SellerID: "u-seller", ClientID: "u-client"},
		},
	}
	return NewProjector(src), src
}

func TestProjectUser_BasicOmitsEverythingElse(t *testing.T) {
	p, src := newFixture()

	m, err := p.User(context.Background(), src.users["u-admin"], UserBasic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 2 || m["id"] != "u-admin" || m["email"] != "admin@shop.test" {
		t.Fatalf("unexpected projection: %v", m)
	}
}

func TestProjectUser_SummaryExpandsRoleOneHop(t *testing.T) {
	p, src := newFixture()

	m, err := p.User(context.Background(), src.users["u-admin"], UserSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	role, ok := m["role"].(map[string]any)
	if !ok {
		t.Fatalf("role not expanded: %v", m["role"])
	}
	if role["id"] != "r-admin" || role["name"] != domain.RoleNameAdmin {
		t.Errorf("unexpected nested role: %v", role)
	}
	// RoleBasic holds no collections; nothing below the role may expand.
	if _, present := role["users"]; present {
		t.Error("nested role expanded its user collection")
	}
}

func TestProjectUser_NoRoleRendersExplicitNull(t *testing.T) {
	p, _ := newFixture()

	m, err := p.User(context.Background(), &domain.User{ID: "u-x", Email: "x@shop.test"}, UserSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, present := m["role"]
	if !present {
		t.Fatal("role key missing; unset relations must render as explicit null")
	}
	if v != nil {
		t.Fatalf("expected nil role, got %v", v)
	}
}

func TestProjectUser_DanglingRoleRendersNull(t *testing.T) {
	p, _ := newFixture()

	m, err := p.User(context.Background(), &domain.User{ID: "u-x", Email: "x@shop.test", RoleID: "gone"}, UserSummary)
	if err != nil {
		t.Fatalf("dangling reference must not fail the projection: %v", err)
	}
	if m["role"] != nil {
		t.Fatalf("expected nil role for dangling reference, got %v", m["role"])
	}
}

// The detail tier's product collections render at ProductBasic: no nested
// product may carry user relations, so the User↔Product cycle never reopens.
func TestProjectUser_DetailCollectionsStayScalar(t *testing.T) {
	p, src := newFixture()

	m, err := p.User(context.Background(), src.users["u-seller"], UserDetail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sellerProducts, ok := m["sellerProducts"].([]map[string]any)
	if !ok {
		t.Fatalf("sellerProducts not a list: %T", m["sellerProducts"])
	}
	if len(sellerProducts) != 2 {
		t.Fatalf("expected 2 seller products, got %d", len(sellerProducts))
	}
	for _, nested := range sellerProducts {
		for _, key := range []string{"admin", "seller", "client"} {
			if _, present := nested[key]; present {
				t.Errorf("nested product re-expanded %s", key)
			}
		}
	}

	adminProducts, ok := m["adminProducts"].([]map[string]any)
	if !ok || len(adminProducts) != 0 {
		t.Fatalf("empty collection must render as empty list, got %v", m["adminProducts"])
	}
}

func TestProjectProduct_SummaryAndDetailTiers(t *testing.T) {
	p, src := newFixture()
	sold := src.products[1]

	summary, err := p.Product(context.Background(), sold, ProductSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	admin, ok := summary["admin"].(map[string]any)
	if !ok {
		t.Fatalf("admin not expanded: %v", summary["admin"])
	}
	if _, present := admin["role"]; present {
		t.Error("summary tier nested user must not carry its role")
	}

	detail, err := p.Product(context.Background(), sold, ProductDetail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	admin, ok = detail["admin"].(map[string]any)
	if !ok {
		t.Fatalf("admin not expanded: %v", detail["admin"])
	}
	role, ok := admin["role"].(map[string]any)
	if !ok {
		t.Fatalf("detail tier nested user must carry its role: %v", admin["role"])
	}
	if role["name"] != domain.RoleNameAdmin {
		t.Errorf("unexpected nested role: %v", role)
	}
}

func TestProjectProduct_AvailableProductClientIsNull(t *testing.T) {
	p, src := newFixture()

	m, err := p.Product(context.Background(), src.products[0], ProductSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, present := m["client"]
	if !present || v != nil {
		t.Fatalf("available product must carry client: null, got present=%v value=%v", present, v)
	}
}

func TestProjectRole_WithUsersExpandsMembers(t *testing.T) {
	p, src := newFixture()

	m, err := p.Role(context.Background(), src.roles["r-seller"], RoleWithUsers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	members, ok := m["users"].([]map[string]any)
	if !ok || len(members) != 1 {
		t.Fatalf("expected one member, got %v", m["users"])
	}
	if members[0]["email"] != "seller@shop.test" {
		t.Errorf("unexpected member: %v", members[0])
	}
	// Members render at UserBasic; their product collections must not load.
	if _, present := members[0]["sellerProducts"]; present {
		t.Error("nested member expanded its product collections")
	}
}

// Brute-force the security invariant across every view combination.
func TestProject_PasswordNeverSerialized(t *testing.T) {
	p, src := newFixture()

	var inspect func(t *testing.T, m map[string]any)
	inspect = func(t *testing.T, m map[string]any) {
		t.Helper()
		for key, v := range m {
			if key == "password" {
				t.Fatal("password reached a projection")
			}
			switch nested := v.(type) {
			case map[string]any:
				inspect(t, nested)
			case []map[string]any:
				for _, item := range nested {
					inspect(t, item)
				}
			}
		}
	}

	for _, name := range Names(KindUser) {
		for _, u := range src.users {
			m, err := p.User(context.Background(), u, name)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			inspect(t, m)
		}
	}
	for _, name := range Names(KindProduct) {
		for _, pr := range src.products {
			m, err := p.Product(context.Background(), pr, name)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			inspect(t, m)
		}
	}
	for _, name := range Names(KindRole) {
		for _, r := range src.roles {
			m, err := p.Role(context.Background(), r, name)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			inspect(t, m)
		}
	}
}

func TestProject_NilEntityAndNilSlice(t *testing.T) {
	p, _ := newFixture()

	m, err := p.User(context.Background(), nil, UserDetail)
	if err != nil {
		t.Fatalf("nil entity must not error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil map, got %v", m)
	}

	list, err := p.Products(context.Background(), nil, ProductSummary)
	if err != nil {
		t.Fatalf("nil slice must not error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}
