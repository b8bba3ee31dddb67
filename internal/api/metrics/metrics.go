// Package metrics defines and registers all custom Prometheus metrics for
// the booking marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - category: the catalog category of the booked service
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by service category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts lifecycle transitions that were applied.
// Label:
//   - status: the new booking status (e.g. "on_the_way")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of booking status transitions applied.",
	},
	[]string{"status"},
)

// TransitionsRejectedTotal counts transitions rejected by the lifecycle guard.
// Labels:
//   - from, to: the attempted transition endpoints
var TransitionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_rejected_total",
		Help:      "Total number of booking status transitions rejected as invalid.",
	},
	[]string{"from", "to"},
)

// StatusEventsDedupTotal counts deduplication decisions on status reports.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new report, processed)
var StatusEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_events_dedup_total",
		Help:      "Total number of status-report deduplication checks, by result.",
	},
	[]string{"result"},
)

// ── Location metrics ──────────────────────────────────────────────────────────

// LocationsSharedTotal counts successful location publishes.
var LocationsSharedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "locations_shared_total",
		Help:      "Total number of location records published.",
	},
)

// LocationWatchers tracks the number of live location watch streams.
var LocationWatchers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "location_watchers",
		Help:      "Current number of open location watch subscriptions.",
	},
)

// GeocodeFallbackTotal counts address resolutions that fell back to the
// formatted coordinate string.
var GeocodeFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_fallback_total",
		Help:      "Total number of reverse-geocode attempts that used the coordinate fallback.",
	},
)
