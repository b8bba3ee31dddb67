package ports

import (
	"context"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

// RegisterInput carries signup details. Role is restricted to customer or
// provider; admins are created out of band.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// AdminService covers admin-only user management.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error)
	SetUserRole(ctx context.Context, userID string, role string) (*domain.User, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	UpdateActive(ctx context.Context, id string, active bool) error
	UpdateRole(ctx context.Context, id, role string) error
}
