package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servlyhq/booking-system/internal/core/domain"
)

const collectionLocations = "user_locations"

// LocationRepository implements ports.LocationRepository using MongoDB.
// The owner id is the document key, so the collection holds at most one
// record per user and every write is a whole-document replace.
type LocationRepository struct {
	col *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{col: db.Collection(collectionLocations)}
}

// Upsert replaces the owner's record, creating it when absent. Keying on
// _id makes the replace atomic at the store level: concurrent publishes
// from the same owner resolve to last write wins, never a partial row.
func (r *LocationRepository) Upsert(ctx context.Context, rec *domain.LocationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": rec.OwnerID},
		rec,
		options.Replace().SetUpsert(true),
	)
	return err
}

// FindByOwner retrieves the stored record for one owner.
func (r *LocationRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.LocationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.LocationRecord
	err := r.col.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return &rec, nil
}
