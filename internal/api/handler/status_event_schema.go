package handler

import "time"

// Zero is a legal coordinate, so the fields carry range tags rather than
// required.
type locationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type statusReportRequest struct {
	BookingID string           `json:"booking_id" validate:"required"`
	Status    string           `json:"status"     validate:"required,oneof=accepted on_the_way arrived in_progress completed cancelled"`
	Timestamp time.Time        `json:"timestamp"  validate:"required"`
	Source    string           `json:"source"     validate:"required"`
	Location  *locationRequest `json:"location"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
