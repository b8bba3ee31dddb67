package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

func seedUser(repo *stubUserRepo, role string) *domain.User {
	u := &domain.User{
		ID:       "usr-1",
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Role:     role,
		Active:   true,
	}
	_, _ = repo.Create(context.Background(), u)
	return u
}

func TestSetUserActive(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, domain.RoleProvider)
	s := NewAdminService(repo, zerolog.Nop())

	u, err := s.SetUserActive(context.Background(), "usr-1", false)
	if err != nil {
		t.Fatalf("SetUserActive: %v", err)
	}
	if u.Active {
		t.Error("user still active")
	}
}

func TestSetUserActiveUnknownUser(t *testing.T) {
	s := NewAdminService(newStubUserRepo(), zerolog.Nop())

	_, err := s.SetUserActive(context.Background(), "ghost", true)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSetUserRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, domain.RoleCustomer)
	s := NewAdminService(repo, zerolog.Nop())

	u, err := s.SetUserRole(context.Background(), "usr-1", domain.RoleProvider)
	if err != nil {
		t.Fatalf("SetUserRole: %v", err)
	}
	if u.Role != domain.RoleProvider {
		t.Errorf("role = %s, want provider", u.Role)
	}
}

func TestSetUserRoleRejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, domain.RoleCustomer)
	s := NewAdminService(repo, zerolog.Nop())

	_, err := s.SetUserRole(context.Background(), "usr-1", "superuser")
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
	if got, _ := repo.FindByID(context.Background(), "usr-1"); got.Role != domain.RoleCustomer {
		t.Errorf("role changed to %s on rejected input", got.Role)
	}
}

func TestListUsers(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, domain.RoleCustomer)
	s := NewAdminService(repo, zerolog.Nop())

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}
