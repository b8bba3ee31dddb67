package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes status reports to a fixed set of workers using consistent
// hashing on the booking id, guaranteeing per-booking processing order.
type Dispatcher struct {
	workers []chan ports.StatusReportInput
	service ports.StatusEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.StatusEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StatusReportInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StatusReportInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a report to the worker responsible for its booking.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(report ports.StatusReportInput) {
	d.workers[d.shardIndex(report.BookingID)] <- report
}

// EnqueueBatch enqueues multiple reports preserving per-booking ordering.
func (d *Dispatcher) EnqueueBatch(reports []ports.StatusReportInput) {
	for _, r := range reports {
		d.Enqueue(r)
	}
}

// shardIndex maps a booking id deterministically to a worker index.
func (d *Dispatcher) shardIndex(bookingID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(bookingID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StatusReportInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case report, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, report); err != nil {
				d.log.Error().Err(err).
					Str("booking_id", report.BookingID).
					Int("worker_id", id).
					Msg("status report processing failed")
			}
		}
	}
}
