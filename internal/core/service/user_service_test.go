package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

func newUserFixture() (*UserService, *stubUserRepo, *stubRoleRepo) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	return NewUserService(users, roles, zerolog.Nop()), users, roles
}

func TestUserCreate_HashesPassword(t *testing.T) {
	svc, users, _ := newUserFixture()

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "alice@shop.test",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), created.ID)
	if stored.PasswordHash == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserCreate_UnknownRoleRejected(t *testing.T) {
	svc, users, _ := newUserFixture()

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "alice@shop.test",
		Password: "hunter22",
		RoleID:   "no-such-role",
	})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if all, _ := users.FindAll(context.Background()); len(all) != 0 {
		t.Error("user created despite unknown role")
	}
}

func TestUserUpdate_PasswordImmutable(t *testing.T) {
	svc, users, _ := newUserFixture()

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "alice@shop.test",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	before, _ := users.FindByID(context.Background(), created.ID)

	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Email: "alice.new@shop.test",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := users.FindByID(context.Background(), created.ID)
	if after.Email != "alice.new@shop.test" {
		t.Errorf("email not updated: %q", after.Email)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("update must retain the stored password hash")
	}
}

func TestUserUpdate_RoleThreeStateParam(t *testing.T) {
	svc, users, roles := newUserFixture()
	adminRole, sellerRole, _ := seedRoles(roles)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "alice@shop.test",
		Password: "hunter22",
		RoleID:   adminRole,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Nil keeps the current role.
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Email: created.Email}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ := users.FindByID(context.Background(), created.ID)
	if u.RoleID != adminRole {
		t.Errorf("role lost on update without param: %q", u.RoleID)
	}

	// A value reassigns, after verifying the role exists.
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Email: created.Email, RoleID: &sellerRole}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ = users.FindByID(context.Background(), created.ID)
	if u.RoleID != sellerRole {
		t.Errorf("role not reassigned: %q", u.RoleID)
	}

	// Empty string clears.
	empty := ""
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Email: created.Email, RoleID: &empty}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, _ = users.FindByID(context.Background(), created.ID)
	if u.RoleID != "" {
		t.Errorf("role not cleared: %q", u.RoleID)
	}

	// An unknown role id fails without touching the user.
	bogus := "no-such-role"
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Email: created.Email, RoleID: &bogus}); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserListByRole_UnknownRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	if _, err := svc.ListByRole(context.Background(), "no-such-role"); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserDelete_Unknown(t *testing.T) {
	svc, _, _ := newUserFixture()

	if err := svc.Delete(context.Background(), "no-such-user"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
