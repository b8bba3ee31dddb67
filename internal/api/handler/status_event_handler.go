package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servlyhq/booking-system/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue status reports.
type EventDispatcher interface {
	Enqueue(report ports.StatusReportInput)
	EnqueueBatch(reports []ports.StatusReportInput)
}

// StatusEventHandler handles status report ingestion.
type StatusEventHandler struct {
	dispatcher EventDispatcher
}

// NewStatusEventHandler creates a StatusEventHandler backed by the given dispatcher.
func NewStatusEventHandler(dispatcher EventDispatcher) *StatusEventHandler {
	return &StatusEventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/status-events. The report is enqueued and the
// request acknowledged with 202 before processing happens.
//
// @Summary      Ingest a single status report
// @Tags         status-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      statusReportRequest  true  "Status report"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/status-events [post]
func (h *StatusEventHandler) Receive(c echo.Context) error {
	var req statusReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toReportInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "report accepted"})
}

// ReceiveBatch handles POST /v1/status-events/batch. The whole batch is
// validated up front; any bad item rejects all of it.
//
// @Summary      Ingest a batch of status reports
// @Tags         status-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []statusReportRequest  true  "Array of status reports"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/status-events/batch [post]
func (h *StatusEventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []statusReportRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.StatusReportInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("report[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toReportInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "reports accepted",
		Count:   len(inputs),
	})
}

// toReportInput maps the HTTP request to the service DTO.
func toReportInput(r statusReportRequest) ports.StatusReportInput {
	in := ports.StatusReportInput{
		BookingID: r.BookingID,
		Status:    r.Status,
		Timestamp: r.Timestamp,
		Source:    r.Source,
	}
	if r.Location != nil {
		in.Location = &ports.LocationInput{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	return in
}
