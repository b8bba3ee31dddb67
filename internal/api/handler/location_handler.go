package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// LocationHandler handles HTTP requests for the location hand-off channel.
type LocationHandler struct {
	service ports.LocationService
}

func NewLocationHandler(service ports.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

type shareLocationRequest struct {
	Lat     float64 `json:"lat"     validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng"     validate:"gte=-180,lte=180"`
	Address string  `json:"address"`
}

type locationResponse struct {
	OwnerID   string    `json:"owner_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLocationResponse(rec *domain.LocationRecord) locationResponse {
	return locationResponse{
		OwnerID:   rec.OwnerID,
		Lat:       rec.Latitude,
		Lng:       rec.Longitude,
		Address:   rec.Address,
		UpdatedAt: rec.UpdatedAt.UTC(),
	}
}

// Share handles PUT /v1/locations/me.
//
// @Summary      Publish the caller's current position
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shareLocationRequest  true  "Coordinates"
// @Success      200   {object}  locationResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/locations/me [put]
func (h *LocationHandler) Share(c echo.Context) error {
	var req shareLocationRequest
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

	rec, err := h.service.SharePosition(c.Request().Context(), ports.ShareInput{
		OwnerID:   actor.UserID,
		Latitude:  req.Lat,
		Longitude: req.Lng,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLocationResponse(rec))
}

// Acquire handles POST /v1/locations/me/acquire. The server asks its
// position source for a one-shot fix and publishes the result.
//
// @Summary      Acquire a device fix and publish it
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  locationResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      504  {object}  errorResponse
// @Router       /v1/locations/me/acquire [post]
func (h *LocationHandler) Acquire(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	rec, err := h.service.AcquireAndShare(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLocationResponse(rec))
}

// Get handles GET /v1/locations/:owner_id.
//
// @Summary      Get the latest stored position of a user
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  path      string  true  "Owner user id"
// @Success      200       {object}  locationResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/locations/{owner_id} [get]
func (h *LocationHandler) Get(c echo.Context) error {
	rec, err := h.service.GetPosition(c.Request().Context(), c.Param("owner_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLocationResponse(rec))
}

// Watch handles GET /v1/locations/:owner_id/watch. Streams the stored
// snapshot followed by every subsequent update as server-sent events until
// the client disconnects.
//
// @Summary      Stream position updates for a user
// @Tags         locations
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        owner_id  path  string  true  "Owner user id"
// @Success      200
// @Router       /v1/locations/{owner_id}/watch [get]
func (h *LocationHandler) Watch(c echo.Context) error {
	ctx := c.Request().Context()

	ch, err := h.service.WatchPosition(ctx, c.Param("owner_id"))
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for rec := range ch {
		payload, err := json.Marshal(toLocationResponse(&rec))
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			return nil
		}
		res.Flush()
	}
	return nil
}
