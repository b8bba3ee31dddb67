package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createBookingRequest struct {
	ServiceID   string    `json:"service_id"   validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted on_the_way arrived in_progress completed"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type bookingLinks struct {
	Self     string `json:"self"`
	Progress string `json:"progress"`
}

type bookingResponse struct {
	ID            string                      `json:"id"`
	CustomerID    string                      `json:"customer_id"`
	ProviderID    string                      `json:"provider_id"`
	ServiceID     string                      `json:"service_id"`
	ServiceTitle  string                      `json:"service_title"`
	ProviderName  string                      `json:"provider_name"`
	Price         float64                     `json:"price"`
	PriceUnit     string                      `json:"price_unit"`
	ScheduledAt   time.Time                   `json:"scheduled_at"`
	Status        string                      `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	StatusHistory []statusHistoryItemResponse `json:"status_history"`
	Links         bookingLinks                `json:"_links"`
}

// bookingSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type bookingSummaryResponse struct {
	ID           string       `json:"id"`
	ServiceTitle string       `json:"service_title"`
	ProviderName string       `json:"provider_name"`
	Price        float64      `json:"price"`
	PriceUnit    string       `json:"price_unit"`
	ScheduledAt  time.Time    `json:"scheduled_at"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	Links        bookingLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listBookingsResponse struct {
	Data       []bookingSummaryResponse `json:"data"`
	Pagination paginationResponse       `json:"pagination"`
}

type progressResponse struct {
	Status    string   `json:"status"`
	StepIndex int      `json:"step_index"`
	Steps     []string `json:"steps"`
	Fraction  float64  `json:"fraction"`
	Terminal  bool     `json:"terminal"`
	Cancelled bool     `json:"cancelled"`
}

type earningsResponse struct {
	Period string    `json:"period"`
	From   time.Time `json:"from"`
	Total  float64   `json:"total"`
	Jobs   int64     `json:"jobs"`
}
