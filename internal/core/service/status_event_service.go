package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/api/metrics"
	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, bookingID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, bookingID, status string, ts time.Time) error
}

type statusEventService struct {
	bookingRepo ports.BookingRepository
	eventRepo   ports.StatusEventRepository
	dedup       DedupChecker
	log         zerolog.Logger
}

// NewStatusEventService returns a StatusEventService implementation.
func NewStatusEventService(
	bookingRepo ports.BookingRepository,
	eventRepo ports.StatusEventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.StatusEventService {
	return &statusEventService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		dedup:       dedup,
		log:         log,
	}
}

// Process validates, deduplicates, and applies a single status report.
func (s *statusEventService) Process(ctx context.Context, in ports.StatusReportInput) error {
	next := domain.BookingStatus(in.Status)

	// 1. Idempotency check: duplicates are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.BookingID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.StatusEventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("booking_id", in.BookingID).Str("status", in.Status).Msg("duplicate report skipped")
		return nil
	}
	metrics.StatusEventsDedupTotal.WithLabelValues("miss").Inc()

	// 2. Find the booking.
	booking, err := s.bookingRepo.FindByID(ctx, in.BookingID)
	if err != nil {
		return fmt.Errorf("process report: %w", err)
	}

	// 3. Validate the state machine transition.
	if !booking.Status.CanTransitionTo(next) {
		metrics.TransitionsRejectedTotal.WithLabelValues(string(booking.Status), string(next)).Inc()
		return fmt.Errorf("process report: %w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, next)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.BookingID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("booking_id", in.BookingID).Msg("failed to set dedup key")
	}

	// 5. Atomically update status + history.
	if err := s.bookingRepo.UpdateStatus(ctx, in.BookingID, next, in.Timestamp, in.Source); err != nil {
		return fmt.Errorf("process report: update status: %w", err)
	}
	metrics.StatusTransitionsTotal.WithLabelValues(string(next)).Inc()

	// 6. Insert into the audit trail (non-fatal on failure).
	report := &domain.StatusReport{
		BookingID: in.BookingID,
		Status:    next,
		Timestamp: in.Timestamp,
		Source:    in.Source,
	}
	if in.Location != nil {
		report.Location = &domain.Coordinates{Lat: in.Location.Lat, Lng: in.Location.Lng}
	}
	if err := s.eventRepo.InsertEvent(ctx, report); err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("booking_id", in.BookingID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("status report processed")

	return nil
}
