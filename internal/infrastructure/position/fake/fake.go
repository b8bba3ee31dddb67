package fake

import (
	"context"
	"sync"
	"time"

	"github.com/servlyhq/booking-system/internal/core/ports"
)

// Source is an in-process position source for development and tests. It
// reports a configurable fix after an optional delay, or a configured error.
type Source struct {
	mu    sync.Mutex
	pos   ports.Position
	delay time.Duration
	err   error
}

// New creates a Source initially positioned at the given coordinates.
func New(lat, lng float64) *Source {
	return &Source{pos: ports.Position{Latitude: lat, Longitude: lng}}
}

// Move updates the reported coordinates.
func (s *Source) Move(lat, lng float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = ports.Position{Latitude: lat, Longitude: lng}
}

// SetDelay makes subsequent fixes take d before returning.
func (s *Source) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// SetError makes subsequent fixes fail with err. Pass nil to clear.
func (s *Source) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// CurrentPosition implements ports.PositionSource.
func (s *Source) CurrentPosition(ctx context.Context, _ ports.PositionOptions) (ports.Position, error) {
	s.mu.Lock()
	pos, delay, err := s.pos, s.delay, s.err
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ports.Position{}, ctx.Err()
		}
	}
	if err != nil {
		return ports.Position{}, err
	}
	return pos, nil
}
