package ports

import (
	"context"
	"time"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

// LocationInput carries optional geographic coordinates for a status report.
type LocationInput struct {
	Lat float64
	Lng float64
}

// StatusReportInput is the DTO passed from the transport layer to
// StatusEventService.
type StatusReportInput struct {
	BookingID string
	Status    string
	Timestamp time.Time
	Source    string
	Location  *LocationInput // optional
}

// StatusEventService processes incoming status reports from external drivers.
type StatusEventService interface {
	Process(ctx context.Context, report StatusReportInput) error
}

// StatusEventRepository persists status reports to the audit trail.
type StatusEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.StatusReport) error
}
