package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/view"
)

type assemblyFixture struct {
	svc      *ProductAssemblyService
	users    *stubUserRepo
	roles    *stubRoleRepo
	products *stubProductRepo

	adminID, sellerID, clientID string
}

func newAssemblyFixture() *assemblyFixture {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	products := newStubProductRepo()

	adminRole, sellerRole, clientRole := seedRoles(roles)
	f := &assemblyFixture{
		users:    users,
		roles:    roles,
		products: products,
		adminID:  seedUser(users, "admin@shop.test", adminRole),
		sellerID: seedUser(users, "seller@shop.test", sellerRole),
		clientID: seedUser(users, "client@shop.test", clientRole),
	}

	projector := view.NewProjector(NewStoreSource(users, roles, products))
	f.svc = NewProductAssemblyService(products, users, roles, projector, zerolog.Nop())
	return f
}

func (f *assemblyFixture) seedProduct(name string, clientID string) *domain.Product {
	p, _ := f.products.Create(context.Background(), &domain.Product{
		Name:     name,
		Price:    10,
		Stock:    1,
		AdminID:  f.adminID,
		SellerID: f.sellerID,
		ClientID: clientID,
	})
	return p
}

func TestAvailableProducts_FiltersSoldAndForcesNullClient(t *testing.T) {
	f := newAssemblyFixture()
	f.seedProduct("available", "")
	f.seedProduct("sold", f.clientID)

	out, err := f.svc.AvailableProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 available product, got %d", len(out))
	}

	m := out[0]
	if m["name"] != "available" {
		t.Errorf("wrong product surfaced: %v", m["name"])
	}
	v, present := m["client"]
	if !present || v != nil {
		t.Fatalf("client must be an explicit null, got present=%v value=%v", present, v)
	}
}

func TestAvailableProducts_EmptyStoreYieldsEmptyList(t *testing.T) {
	f := newAssemblyFixture()

	out, err := f.svc.AvailableProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty list, got %v", out)
	}
}

func TestRoleBasedProduct_AdminSeesAllRelations(t *testing.T) {
	f := newAssemblyFixture()
	p := f.seedProduct("keyboard", f.clientID)

	m, err := f.svc.RoleBasedProduct(context.Background(), p, domain.RoleNameAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"admin", "seller", "client"} {
		nested, ok := m[key].(map[string]any)
		if !ok {
			t.Fatalf("admin view missing %s: %v", key, m[key])
		}
		// Detail tier: nested users carry their role.
		if _, present := nested["role"]; !present {
			t.Errorf("%s projection lost its role", key)
		}
	}
}

func TestRoleBasedProduct_SellerSeesAdminAndClientOnly(t *testing.T) {
	f := newAssemblyFixture()
	p := f.seedProduct("keyboard", f.clientID)

	m, err := f.svc.RoleBasedProduct(context.Background(), p, domain.RoleNameSeller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m["admin"].(map[string]any); !ok {
		t.Errorf("seller view must include admin: %v", m["admin"])
	}
	if _, ok := m["client"].(map[string]any); !ok {
		t.Errorf("seller view must include client: %v", m["client"])
	}
	if _, present := m["seller"]; present {
		t.Error("seller view must omit the seller relation entirely")
	}
}

func TestRoleBasedProduct_ClientSeesSellerOnly(t *testing.T) {
	f := newAssemblyFixture()
	p := f.seedProduct("keyboard", f.clientID)

	m, err := f.svc.RoleBasedProduct(context.Background(), p, domain.RoleNameClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m["seller"].(map[string]any); !ok {
		t.Errorf("client view must include seller: %v", m["seller"])
	}
	// Omitted, not nulled.
	for _, key := range []string{"admin", "client"} {
		if _, present := m[key]; present {
			t.Errorf("client view must omit %s", key)
		}
	}
}

func TestRoleBasedProduct_UnknownRoleGetsBareFields(t *testing.T) {
	f := newAssemblyFixture()
	p := f.seedProduct("keyboard", "")

	for _, roleName := range []string{"AUDITOR", "", "admin"} {
		m, err := f.svc.RoleBasedProduct(context.Background(), p, roleName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, key := range []string{"admin", "seller", "client"} {
			if _, present := m[key]; present {
				t.Errorf("role %q leaked relation %s", roleName, key)
			}
		}
		if m["name"] != "keyboard" {
			t.Errorf("bare fields missing: %v", m)
		}
	}
}

func TestRoleBasedProducts_UnknownUser(t *testing.T) {
	f := newAssemblyFixture()
	f.seedProduct("keyboard", "")

	if _, err := f.svc.RoleBasedProducts(context.Background(), "no-such-user"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBusinessSummary_CountsAndGroupings(t *testing.T) {
	f := newAssemblyFixture()
	f.seedProduct("a", "")
	f.seedProduct("b", "")
	f.seedProduct("c", f.clientID)

	summary, err := f.svc.BusinessSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProducts != 3 || summary.AvailableProducts != 2 || summary.SoldProducts != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.ProductsByAdmin["admin@shop.test"] != 3 {
		t.Errorf("admin grouping: %v", summary.ProductsByAdmin)
	}
	if summary.ProductsBySeller["seller@shop.test"] != 3 {
		t.Errorf("seller grouping: %v", summary.ProductsBySeller)
	}
}

func TestBusinessSummary_DanglingRefsExcludedFromGroupings(t *testing.T) {
	f := newAssemblyFixture()
	f.seedProduct("a", "")
	if err := f.users.DeleteByID(context.Background(), f.adminID); err != nil {
		t.Fatalf("seed: %v", err)
	}

	summary, err := f.svc.BusinessSummary(context.Background())
	if err != nil {
		t.Fatalf("dangling admin must not fail the summary: %v", err)
	}
	if summary.TotalProducts != 1 {
		t.Fatalf("unexpected total: %d", summary.TotalProducts)
	}
	if len(summary.ProductsByAdmin) != 0 {
		t.Errorf("dangling admin still grouped: %v", summary.ProductsByAdmin)
	}
	if summary.ProductsBySeller["seller@shop.test"] != 1 {
		t.Errorf("seller grouping: %v", summary.ProductsBySeller)
	}
}

func TestBusinessSummary_EmptyStore(t *testing.T) {
	f := newAssemblyFixture()

	summary, err := f.svc.BusinessSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProducts != 0 || summary.AvailableProducts != 0 || summary.SoldProducts != 0 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.ProductsByAdmin == nil || summary.ProductsBySeller == nil {
		t.Fatal("groupings must be empty maps, not nil")
	}
}
