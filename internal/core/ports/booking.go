package ports

import (
	"context"
	"time"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

// Actor identifies the authenticated caller for RBAC-scoped operations.
type Actor struct {
	UserID string
	Role   string
}

// CreateBookingInput carries all data needed to create a new booking.
// Service title, provider and price are resolved from the catalog.
type CreateBookingInput struct {
	CustomerID  string
	ServiceID   string
	ScheduledAt time.Time
}

// ListBookingsFilter carries query parameters for listing bookings.
// Role scoping (customer sees own, provider sees assigned) is enforced by
// the service layer, not by the caller.
type ListBookingsFilter struct {
	Status string // optional
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// BookingProgress is the computed lifecycle view of a single booking.
type BookingProgress struct {
	Status    domain.BookingStatus
	StepIndex int
	Steps     []domain.BookingStatus
	Fraction  float64
	Terminal  bool
	Cancelled bool
}

// EarningsSummary aggregates a provider's completed bookings over a window.
type EarningsSummary struct {
	Period string
	From   time.Time
	Total  float64
	Jobs   int64
}

// BookingService defines use-case operations for bookings.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, bookingID string, actor Actor) (*domain.Booking, error)
	Progress(ctx context.Context, bookingID string, actor Actor) (*BookingProgress, error)
	List(ctx context.Context, actor Actor, filter ListBookingsFilter) ([]*domain.Booking, int64, error)
	// AdvanceStatus is the explicit lifecycle driver: provider or admin
	// reports the next status. Guarded by the single-step transition rule.
	AdvanceStatus(ctx context.Context, bookingID string, next domain.BookingStatus, actor Actor, source string) (*domain.Booking, error)
	// Cancel moves a pending booking to cancelled. Customer-owned bookings only.
	Cancel(ctx context.Context, bookingID string, actor Actor) (*domain.Booking, error)
	Earnings(ctx context.Context, providerID string, period string) (*EarningsSummary, error)
}

// ListBookingsQuery is the repository-level filter. Empty fields are not
// applied.
type ListBookingsQuery struct {
	CustomerID string
	ProviderID string
	Status     string
	Page       int
	Limit      int
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, q ListBookingsQuery) ([]*domain.Booking, int64, error)
	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, ts time.Time, notes string) error
	// EarningsSummary returns the sum and count of bookings completed by
	// providerID since the given time.
	EarningsSummary(ctx context.Context, providerID string, since time.Time) (total float64, jobs int64, err error)
}
