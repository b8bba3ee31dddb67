package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAccepted   BookingStatus = "accepted"
	StatusOnTheWay   BookingStatus = "on_the_way"
	StatusArrived    BookingStatus = "arrived"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"

	// StatusCancelled is a booking-level terminal state outside the ordered
	// lifecycle. Only reachable from pending.
	StatusCancelled BookingStatus = "cancelled"
)

// LifecycleSteps is the ordered forward-only progression of a booking.
// Cancelled is intentionally not part of it.
var LifecycleSteps = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusOnTheWay,
	StatusArrived,
	StatusInProgress,
	StatusCompleted,
}

var ErrUnknownStatus = errors.New("unknown booking status")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBookingNotFound = errors.New("booking not found")
var ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")
var ErrForbidden = errors.New("access forbidden")

// StepIndex returns the 0-based position of status within LifecycleSteps.
// Statuses outside the ordered lifecycle (including cancelled) yield
// ErrUnknownStatus.
func StepIndex(status BookingStatus) (int, error) {
	for i, s := range LifecycleSteps {
		if s == status {
			return i, nil
		}
	}
	return 0, ErrUnknownStatus
}

// ProgressFraction maps a lifecycle status to [0.0, 1.0]:
// 0.0 at pending, 1.0 at completed.
func ProgressFraction(status BookingStatus) (float64, error) {
	i, err := StepIndex(status)
	if err != nil {
		return 0, err
	}
	return float64(i) / float64(len(LifecycleSteps)-1), nil
}

// IsTerminal reports whether status ends the ordered lifecycle.
func IsTerminal(status BookingStatus) bool {
	return status == StatusCompleted
}

// CanTransitionTo reports whether a transition from s to next is allowed.
// The lifecycle is strictly monotonic: exactly one step forward at a time,
// no skipping, no going back. The only exception is pending -> cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == StatusPending && next == StatusCancelled {
		return true
	}
	from, err := StepIndex(s)
	if err != nil {
		return false
	}
	to, err := StepIndex(next)
	if err != nil {
		return false
	}
	return to == from+1
}

// StatusHistoryEntry records a single status transition on a booking.
type StatusHistoryEntry struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Booking is the core aggregate: one scheduled engagement between a
// customer and a provider for a catalog service. Service title, provider
// and price are snapshotted at creation time so later catalog edits do not
// rewrite history.
type Booking struct {
	ID            string               `json:"id" bson:"_id"`
	CustomerID    string               `json:"customer_id" bson:"customer_id"`
	ProviderID    string               `json:"provider_id" bson:"provider_id"`
	ServiceID     string               `json:"service_id" bson:"service_id"`
	ServiceTitle  string               `json:"service_title" bson:"service_title"`
	ProviderName  string               `json:"provider_name" bson:"provider_name"`
	Price         float64              `json:"price" bson:"price"`
	PriceUnit     string               `json:"price_unit" bson:"price_unit"`
	ScheduledAt   time.Time            `json:"scheduled_at" bson:"scheduled_at"`
	Status        BookingStatus        `json:"status" bson:"status"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// StatusReport is a status update received from an external driver
// (provider app, dispatch backend). Persisted to the audit trail.
type StatusReport struct {
	BookingID string
	Status    BookingStatus
	Timestamp time.Time
	Source    string
	Location  *Coordinates // optional
}
