package handler

import (
	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// --- Domain / service result → HTTP response ---

func bookingLinksFor(id string) bookingLinks {
	return bookingLinks{
		Self:     "/v1/bookings/" + id,
		Progress: "/v1/bookings/" + id + "/progress",
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	history := make([]statusHistoryItemResponse, len(b.StatusHistory))
	for i, e := range b.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(e.Status),
			Timestamp: e.Timestamp.UTC(),
			Notes:     e.Notes,
		}
	}
	return bookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		ProviderID:    b.ProviderID,
		ServiceID:     b.ServiceID,
		ServiceTitle:  b.ServiceTitle,
		ProviderName:  b.ProviderName,
		Price:         b.Price,
		PriceUnit:     b.PriceUnit,
		ScheduledAt:   b.ScheduledAt.UTC(),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.UTC(),
		StatusHistory: history,
		Links:         bookingLinksFor(b.ID),
	}
}

func toSummaryResponse(b *domain.Booking) bookingSummaryResponse {
	return bookingSummaryResponse{
		ID:           b.ID,
		ServiceTitle: b.ServiceTitle,
		ProviderName: b.ProviderName,
		Price:        b.Price,
		PriceUnit:    b.PriceUnit,
		ScheduledAt:  b.ScheduledAt.UTC(),
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.UTC(),
		Links:        bookingLinksFor(b.ID),
	}
}

func toListResponse(bookings []*domain.Booking, total int64, page, limit int) listBookingsResponse {
	items := make([]bookingSummaryResponse, len(bookings))
	for i, b := range bookings {
		items[i] = toSummaryResponse(b)
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return listBookingsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

func toProgressResponse(p *ports.BookingProgress) progressResponse {
	steps := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = string(s)
	}
	return progressResponse{
		Status:    string(p.Status),
		StepIndex: p.StepIndex,
		Steps:     steps,
		Fraction:  p.Fraction,
		Terminal:  p.Terminal,
		Cancelled: p.Cancelled,
	}
}
