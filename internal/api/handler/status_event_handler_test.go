package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/servlyhq/booking-system/internal/core/ports"
)

type stubDispatcher struct {
	single []ports.StatusReportInput
	batch  [][]ports.StatusReportInput
}

func (d *stubDispatcher) Enqueue(report ports.StatusReportInput) {
	d.single = append(d.single, report)
}

func (d *stubDispatcher) EnqueueBatch(reports []ports.StatusReportInput) {
	d.batch = append(d.batch, reports)
}

const validReport = `{
	"booking_id": "bkg-1",
	"status": "accepted",
	"timestamp": "2026-08-29T10:00:00Z",
	"source": "provider_app",
	"location": {"lat": 19.43, "lng": -99.13}
}`

func TestStatusEventHandler_Receive(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	req := httptest.NewRequest(http.MethodPost, "/v1/status-events", strings.NewReader(validReport))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(disp.single) != 1 {
		t.Fatalf("enqueued = %d, want 1", len(disp.single))
	}
	got := disp.single[0]
	if got.BookingID != "bkg-1" || got.Status != "accepted" || got.Source != "provider_app" {
		t.Fatalf("unexpected report: %+v", got)
	}
	if got.Location == nil || got.Location.Lat != 19.43 {
		t.Fatalf("location not mapped: %+v", got.Location)
	}
}

func TestStatusEventHandler_Receive_ZeroCoordinates(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	// The equator/prime-meridian intersection is a valid position.
	body := strings.NewReader(`{"booking_id":"bkg-1","status":"accepted","timestamp":"2026-08-29T10:00:00Z","source":"provider_app","location":{"lat":0,"lng":0}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/status-events", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(disp.single) != 1 {
		t.Fatalf("enqueued = %d, want 1", len(disp.single))
	}
	loc := disp.single[0].Location
	if loc == nil || loc.Lat != 0 || loc.Lng != 0 {
		t.Fatalf("location not mapped: %+v", loc)
	}
}

func TestStatusEventHandler_Receive_OutOfRangeCoordinates(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	body := strings.NewReader(`{"booking_id":"bkg-1","status":"accepted","timestamp":"2026-08-29T10:00:00Z","source":"provider_app","location":{"lat":95,"lng":-99.13}}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/status-events", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(disp.single) != 0 {
		t.Fatalf("out-of-range report still enqueued")
	}
}

func TestStatusEventHandler_Receive_UnknownStatus(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	body := strings.NewReader(`{"booking_id":"bkg-1","status":"teleported","timestamp":"2026-08-29T10:00:00Z","source":"provider_app"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/status-events", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Receive(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(disp.single) != 0 {
		t.Fatalf("invalid report still enqueued")
	}
}

func TestStatusEventHandler_ReceiveBatch(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	body := strings.NewReader(`[` + validReport + `,{
		"booking_id": "bkg-2",
		"status": "on_the_way",
		"timestamp": "2026-08-29T10:05:00Z",
		"source": "provider_app"
	}]`)
	req := httptest.NewRequest(http.MethodPost, "/v1/status-events/batch", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ReceiveBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(disp.batch) != 1 || len(disp.batch[0]) != 2 {
		t.Fatalf("unexpected batch: %+v", disp.batch)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(2) {
		t.Fatalf("count = %v, want 2", resp["count"])
	}
}

func TestStatusEventHandler_ReceiveBatch_Empty(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	req := httptest.NewRequest(http.MethodPost, "/v1/status-events/batch", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ReceiveBatch(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(disp.batch) != 0 {
		t.Fatalf("empty batch still enqueued")
	}
}

func TestStatusEventHandler_ReceiveBatch_InvalidItem(t *testing.T) {
	e := newTestEcho()
	disp := &stubDispatcher{}
	handler := NewStatusEventHandler(disp)

	// Second item is missing its booking_id: the whole batch is rejected.
	body := strings.NewReader(`[` + validReport + `,{
		"status": "arrived",
		"timestamp": "2026-08-29T10:10:00Z",
		"source": "provider_app"
	}]`)
	req := httptest.NewRequest(http.MethodPost, "/v1/status-events/batch", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ReceiveBatch(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(disp.batch) != 0 {
		t.Fatalf("partially valid batch still enqueued")
	}
}
