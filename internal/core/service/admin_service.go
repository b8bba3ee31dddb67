package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// AdminService covers admin-only user management: listing accounts,
// activating/deactivating them, and reassigning roles.
type AdminService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(repo ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AdminService) SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	if err := s.repo.UpdateActive(ctx, userID, active); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Bool("active", active).Msg("user status updated")
	return s.repo.FindByID(ctx, userID)
}

func (s *AdminService) SetUserRole(ctx context.Context, userID string, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("role", role).Msg("user role updated")
	return s.repo.FindByID(ctx, userID)
}
