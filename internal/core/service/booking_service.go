package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/api/metrics"
	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

const maxPageLimit = 100

// BookingService implements booking use cases over the repository layer.
type BookingService struct {
	repo     ports.BookingRepository
	services ports.ServiceRepository
	logger   zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, services ports.ServiceRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, services: services, logger: logger}
}

// Create books a catalog service for a customer. The new booking starts at
// pending with a single history entry; price, title and provider are
// snapshotted from the catalog.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	svc, err := s.services.FindByID(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !svc.IsActive {
		return nil, domain.ErrServiceNotFound
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:           uuid.NewString(),
		CustomerID:   input.CustomerID,
		ProviderID:   svc.ProviderID,
		ServiceID:    svc.ID,
		ServiceTitle: svc.Title,
		ProviderName: svc.ProviderName,
		Price:        svc.Price,
		PriceUnit:    svc.PriceUnit,
		ScheduledAt:  input.ScheduledAt,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "booking created"},
		},
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("service_id", svc.ID).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(svc.CategoryID).Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("customer_id", booking.CustomerID).
		Str("provider_id", booking.ProviderID).
		Msg("booking created")

	return booking, nil
}

// Get retrieves a booking, enforcing visibility: customers and providers
// only see bookings they are party to, admins see everything.
func (s *BookingService) Get(ctx context.Context, bookingID string, actor ports.Actor) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(booking, actor); err != nil {
		return nil, err
	}
	return booking, nil
}

// Progress computes the lifecycle view of a booking: current step, the
// ordered step list, and the progress fraction.
func (s *BookingService) Progress(ctx context.Context, bookingID string, actor ports.Actor) (*ports.BookingProgress, error) {
	booking, err := s.Get(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.StatusCancelled {
		return &ports.BookingProgress{
			Status:    booking.Status,
			Steps:     domain.LifecycleSteps,
			Cancelled: true,
		}, nil
	}

	idx, err := domain.StepIndex(booking.Status)
	if err != nil {
		return nil, err
	}
	fraction, err := domain.ProgressFraction(booking.Status)
	if err != nil {
		return nil, err
	}

	return &ports.BookingProgress{
		Status:    booking.Status,
		StepIndex: idx,
		Steps:     domain.LifecycleSteps,
		Fraction:  fraction,
		Terminal:  domain.IsTerminal(booking.Status),
	}, nil
}

// List returns a page of bookings scoped to the actor's role.
func (s *BookingService) List(ctx context.Context, actor ports.Actor, filter ports.ListBookingsFilter) ([]*domain.Booking, int64, error) {
	q := ports.ListBookingsQuery{
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	switch actor.Role {
	case domain.RoleCustomer:
		q.CustomerID = actor.UserID
	case domain.RoleProvider:
		q.ProviderID = actor.UserID
	case domain.RoleAdmin:
		// no scoping
	default:
		return nil, 0, domain.ErrForbidden
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}

	return s.repo.List(ctx, q)
}

// AdvanceStatus moves a booking one step forward along the lifecycle.
// Only the assigned provider or an admin may drive the lifecycle; invalid
// transitions are rejected and leave the stored status untouched.
func (s *BookingService) AdvanceStatus(ctx context.Context, bookingID string, next domain.BookingStatus, actor ports.Actor, source string) (*domain.Booking, error) {
	if _, err := domain.StepIndex(next); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if booking.ProviderID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if !booking.Status.CanTransitionTo(next) {
		metrics.TransitionsRejectedTotal.WithLabelValues(string(booking.Status), string(next)).Inc()
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, next)
	}

	ts := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, bookingID, next, ts, source); err != nil {
		return nil, fmt.Errorf("advance status: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().
		Str("booking_id", bookingID).
		Str("from", string(booking.Status)).
		Str("to", string(next)).
		Str("source", source).
		Msg("booking status advanced")

	booking.Status = next
	booking.StatusHistory = append(booking.StatusHistory, domain.StatusHistoryEntry{
		Status: next, Timestamp: ts, Notes: source,
	})
	return booking, nil
}

// Cancel moves a pending booking to cancelled. Only the owning customer
// (or an admin) may cancel, and only while the booking is still pending.
func (s *BookingService) Cancel(ctx context.Context, bookingID string, actor ports.Actor) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if booking.CustomerID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		return nil, domain.ErrBookingNotCancellable
	}

	ts := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, bookingID, domain.StatusCancelled, ts, "cancelled by "+actor.Role); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.logger.Info().Str("booking_id", bookingID).Str("role", actor.Role).Msg("booking cancelled")

	booking.Status = domain.StatusCancelled
	booking.StatusHistory = append(booking.StatusHistory, domain.StatusHistoryEntry{
		Status: domain.StatusCancelled, Timestamp: ts, Notes: "cancelled by " + actor.Role,
	})
	return booking, nil
}

// Earnings summarises a provider's completed bookings over the requested
// window: "week", "month", or "year".
func (s *BookingService) Earnings(ctx context.Context, providerID string, period string) (*ports.EarningsSummary, error) {
	now := time.Now().UTC()
	var from time.Time
	switch period {
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, -1, 0)
	case "year":
		from = now.AddDate(-1, 0, 0)
	default:
		period = "week"
		from = now.AddDate(0, 0, -7)
	}

	total, jobs, err := s.repo.EarningsSummary(ctx, providerID, from)
	if err != nil {
		return nil, fmt.Errorf("earnings summary: %w", err)
	}

	return &ports.EarningsSummary{Period: period, From: from, Total: total, Jobs: jobs}, nil
}

func authorize(b *domain.Booking, actor ports.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleCustomer:
		if b.CustomerID == actor.UserID {
			return nil
		}
	case domain.RoleProvider:
		if b.ProviderID == actor.UserID {
			return nil
		}
	}
	return domain.ErrForbidden
}
