package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/api/metrics"
	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

const (
	// acquireTimeout is the hard limit on a one-shot device fix. No partial
	// result is produced when it elapses.
	acquireTimeout = 10 * time.Second

	watchBuffer = 16
)

// LocationService implements the location hand-off channel: upsert-on-write
// persistence plus push delivery to watchers.
type LocationService struct {
	repo     ports.LocationRepository
	feed     ports.LocationFeed
	source   ports.PositionSource // nil when the host has no positioning capability
	geocoder ports.Geocoder      // nil disables reverse geocoding
	logger   zerolog.Logger
}

func NewLocationService(
	repo ports.LocationRepository,
	feed ports.LocationFeed,
	source ports.PositionSource,
	geocoder ports.Geocoder,
	logger zerolog.Logger,
) *LocationService {
	return &LocationService{repo: repo, feed: feed, source: source, geocoder: geocoder, logger: logger}
}

// SharePosition upserts the owner's record and pushes it to watchers.
// Coordinates are validated before any write is attempted.
func (s *LocationService) SharePosition(ctx context.Context, input ports.ShareInput) (*domain.LocationRecord, error) {
	if input.OwnerID == "" {
		return nil, domain.ErrMissingOwner
	}
	if err := domain.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	rec := &domain.LocationRecord{
		OwnerID:   input.OwnerID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Address:   input.Address,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to persist location")
		return nil, fmt.Errorf("share position: %w", err)
	}

	// Push failures do not fail the share: the record is persisted and the
	// next watcher snapshot will pick it up.
	if err := s.feed.Publish(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", input.OwnerID).Msg("failed to push location update")
	}

	metrics.LocationsSharedTotal.Inc()
	s.logger.Debug().
		Str("owner_id", rec.OwnerID).
		Float64("lat", rec.Latitude).
		Float64("lng", rec.Longitude).
		Msg("location shared")

	return rec, nil
}

// GetPosition returns the stored snapshot for an owner.
func (s *LocationService) GetPosition(ctx context.Context, ownerID string) (*domain.LocationRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	return s.repo.FindByOwner(ctx, ownerID)
}

// AcquireAndShare requests a one-shot high-accuracy fix (10 s timeout, no
// cached position), resolves an address best-effort, and runs the publish
// path. Acquisition failures map to the domain.ErrPosition* sentinels and
// never result in a write.
func (s *LocationService) AcquireAndShare(ctx context.Context, ownerID string) (*domain.LocationRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	if s.source == nil {
		return nil, domain.ErrPositionNotSupported
	}

	fixCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()

	pos, err := s.source.CurrentPosition(fixCtx, ports.PositionOptions{
		HighAccuracy: true,
		Timeout:      acquireTimeout,
		MaximumAge:   0,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrPositionTimeout
		}
		return nil, err
	}

	return s.SharePosition(ctx, ports.ShareInput{
		OwnerID:   ownerID,
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Address:   s.resolveAddress(ctx, pos.Latitude, pos.Longitude),
	})
}

// resolveAddress reverse-geocodes best-effort. Any failure (or no geocoder
// configured) degrades silently to a "lat, lng" string with 6 decimals.
func (s *LocationService) resolveAddress(ctx context.Context, lat, lng float64) string {
	fallback := fmt.Sprintf("%.6f, %.6f", lat, lng)
	if s.geocoder == nil {
		metrics.GeocodeFallbackTotal.Inc()
		return fallback
	}
	addr, err := s.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil || addr == "" {
		if err != nil {
			s.logger.Debug().Err(err).Msg("reverse geocode failed, using coordinate fallback")
		}
		metrics.GeocodeFallbackTotal.Inc()
		return fallback
	}
	return addr
}

// WatchPosition emits the stored snapshot (when one exists) followed by
// every pushed change for ownerID. Deliveries older than the last observed
// update are discarded, so a fetch racing a push can never roll the
// watcher's view backwards. Cancelling ctx closes the returned channel and
// releases the underlying subscription.
func (s *LocationService) WatchPosition(ctx context.Context, ownerID string) (<-chan domain.LocationRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}

	// Subscribe before the snapshot fetch so no update falls in the gap.
	feed, err := s.feed.Subscribe(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("watch position: %w", err)
	}

	out := make(chan domain.LocationRecord, watchBuffer)
	go func() {
		defer close(out)
		metrics.LocationWatchers.Inc()
		defer metrics.LocationWatchers.Dec()

		var last time.Time

		snap, err := s.repo.FindByOwner(ctx, ownerID)
		switch {
		case err == nil:
			last = snap.UpdatedAt
			select {
			case out <- *snap:
			case <-ctx.Done():
				return
			}
		case errors.Is(err, domain.ErrLocationNotFound):
			// never shared: emit nothing until the first push
		default:
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("snapshot fetch failed")
		}

		for {
			select {
			case <-ctx.Done():
				return
			case rec, ok := <-feed:
				if !ok {
					return
				}
				if !rec.UpdatedAt.After(last) {
					continue
				}
				last = rec.UpdatedAt
				select {
				case out <- rec:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
