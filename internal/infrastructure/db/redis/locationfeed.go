package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

const feedBuffer = 16

// LocationFeed pushes location records over Redis pub/sub, one channel per
// owner. Pub/sub gives fire-and-forget fan-out: watchers that fall behind
// miss messages rather than backing up the publisher, and the stored
// snapshot covers anything missed.
type LocationFeed struct {
	client *redis.Client
}

// NewLocationFeed creates a LocationFeed wrapping the given Redis client.
func NewLocationFeed(client *redis.Client) *LocationFeed {
	return &LocationFeed{client: client}
}

func channelFor(ownerID string) string {
	return "location:" + ownerID
}

// Publish sends the record to every subscriber of the owner's channel.
func (f *LocationFeed) Publish(ctx context.Context, rec *domain.LocationRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal location record: %w", err)
	}
	if err := f.client.Publish(ctx, channelFor(rec.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("publish location: %w", err)
	}
	return nil
}

// Subscribe delivers pushed records for one owner until ctx is cancelled.
// The returned channel is closed, and the Redis subscription released, when
// ctx ends.
func (f *LocationFeed) Subscribe(ctx context.Context, ownerID string) (<-chan domain.LocationRecord, error) {
	sub := f.client.Subscribe(ctx, channelFor(ownerID))

	// Wait for the subscription to be confirmed so callers can rely on
	// publishes after Subscribe returning being delivered.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe location: %w", err)
	}

	out := make(chan domain.LocationRecord, feedBuffer)
	msgs := sub.Channel()

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var rec domain.LocationRecord
				if err := json.Unmarshal([]byte(msg.Payload), &rec); err != nil {
					continue
				}
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
