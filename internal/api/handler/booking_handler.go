package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /v1/bookings.
//
// @Summary      Create a new booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		CustomerID:  actor.UserID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// Get handles GET /v1/bookings/:id.
//
// @Summary      Get a booking by id
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  bookingResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Progress handles GET /v1/bookings/:id/progress.
//
// @Summary      Get the lifecycle progress of a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  progressResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id}/progress [get]
func (h *BookingHandler) Progress(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	progress, err := h.service.Progress(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProgressResponse(progress))
}

// List handles GET /v1/bookings.
//
// @Summary      List bookings visible to the caller
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listBookingsResponse
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}

	bookings, total, err := h.service.List(c.Request().Context(), actor, ports.ListBookingsFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(bookings, total, page, limit))
}

// AdvanceStatus handles POST /v1/bookings/:id/status.
//
// @Summary      Advance a booking to its next lifecycle status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      advanceStatusRequest  true  "Next status"
// @Success      200   {object}  bookingResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings/{id}/status [post]
func (h *BookingHandler) AdvanceStatus(c echo.Context) error {
	var req advanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	booking, err := h.service.AdvanceStatus(c.Request().Context(),
		c.Param("id"), domain.BookingStatus(req.Status), actor, "api")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Cancel handles POST /v1/bookings/:id/cancel.
//
// @Summary      Cancel a pending booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  bookingResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Cancel(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Earnings handles GET /v1/provider/earnings.
//
// @Summary      Summarise the caller's completed-booking earnings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "week | month | year (default week)"
// @Success      200     {object}  earningsResponse
// @Router       /v1/provider/earnings [get]
func (h *BookingHandler) Earnings(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Earnings(c.Request().Context(), actor.UserID, c.QueryParam("period"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, earningsResponse{
		Period: summary.Period,
		From:   summary.From.UTC(),
		Total:  summary.Total,
		Jobs:   summary.Jobs,
	})
}
