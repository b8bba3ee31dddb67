package ports

import (
	"context"
	"time"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

// ShareInput carries a position publish request for one owner.
type ShareInput struct {
	OwnerID   string
	Latitude  float64
	Longitude float64
	Address   string // optional; resolved by the acquisition path when empty
}

// LocationService is the location hand-off channel: one writer per owner,
// any number of live watchers.
type LocationService interface {
	// SharePosition validates and upserts the owner's record, then pushes
	// it to all active watchers.
	SharePosition(ctx context.Context, input ShareInput) (*domain.LocationRecord, error)
	// GetPosition returns the stored snapshot for an owner.
	GetPosition(ctx context.Context, ownerID string) (*domain.LocationRecord, error)
	// AcquireAndShare requests a one-shot device fix, resolves a
	// human-readable address best-effort, and runs the publish path.
	AcquireAndShare(ctx context.Context, ownerID string) (*domain.LocationRecord, error)
	// WatchPosition emits the stored snapshot (if any) followed by every
	// subsequent change, in updated_at order. The channel closes when ctx
	// is cancelled; cancelling always releases the underlying subscription.
	WatchPosition(ctx context.Context, ownerID string) (<-chan domain.LocationRecord, error)
}

// LocationRepository stores the latest record per owner.
type LocationRepository interface {
	// Upsert overwrites the record keyed by OwnerID, creating it when absent.
	Upsert(ctx context.Context, rec *domain.LocationRecord) error
	FindByOwner(ctx context.Context, ownerID string) (*domain.LocationRecord, error)
}

// LocationFeed is the push transport between the publish and watch paths.
type LocationFeed interface {
	Publish(ctx context.Context, rec *domain.LocationRecord) error
	// Subscribe delivers pushed records for one owner until ctx is
	// cancelled, at which point the channel is closed and the underlying
	// transport resource released.
	Subscribe(ctx context.Context, ownerID string) (<-chan domain.LocationRecord, error)
}

// PositionOptions mirror the one-shot device fix request knobs.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Position is a raw device fix.
type Position struct {
	Latitude  float64
	Longitude float64
}

// PositionSource abstracts the device positioning capability. Expected
// failure modes are the domain.ErrPosition* sentinels.
type PositionSource interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// Geocoder resolves coordinates to a human-readable address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
