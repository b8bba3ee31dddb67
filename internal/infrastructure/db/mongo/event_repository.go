package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

const collectionStatusEvents = "status_events"

// StatusEventRepository persists raw status reports for auditing.
type StatusEventRepository struct {
	col *mongo.Collection
}

func NewStatusEventRepository(db *mongo.Database) *StatusEventRepository {
	return &StatusEventRepository{col: db.Collection(collectionStatusEvents)}
}

func (r *StatusEventRepository) InsertEvent(ctx context.Context, event *domain.StatusReport) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"booking_id": event.BookingID,
		"status":     string(event.Status),
		"timestamp":  event.Timestamp.UTC(),
		"source":     event.Source,
	}
	if event.Location != nil {
		doc["location"] = bson.M{"lat": event.Location.Lat, "lng": event.Location.Lng}
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes creates necessary indexes on the status events collection.
func (r *StatusEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
