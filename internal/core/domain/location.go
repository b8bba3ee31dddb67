package domain

import (
	"errors"
	"time"
)

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// LocationRecord is one user's last-known position. Exactly one record per
// owner; every share overwrites the previous one (upsert, last write wins).
type LocationRecord struct {
	OwnerID   string    `json:"owner_id" bson:"_id"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

var ErrLocationNotFound = errors.New("location not found")
var ErrInvalidCoordinates = errors.New("coordinates out of range")
var ErrMissingOwner = errors.New("owner id is required")

// Position acquisition failures. Each maps to a distinct user-facing
// message; none triggers an automatic retry.
var ErrPositionPermissionDenied = errors.New("location permission denied")
var ErrPositionUnavailable = errors.New("position unavailable")
var ErrPositionTimeout = errors.New("position request timed out")
var ErrPositionNotSupported = errors.New("positioning not supported")

// ValidateCoordinates rejects positions outside the WGS84 value space
// before any write is attempted.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidCoordinates
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
