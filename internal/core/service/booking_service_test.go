package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/servlyhq/booking-system/internal/core/domain"
	"github.com/servlyhq/booking-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byID          map[string]*domain.Booking
	createErr     error
	updateErr     error
	earningsTotal float64
	earningsJobs  int64
	lastSince     time.Time
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubBookingRepo) List(_ context.Context, q ports.ListBookingsQuery) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, b := range r.byID {
		if q.CustomerID != "" && b.CustomerID != q.CustomerID {
			continue
		}
		if q.ProviderID != "" && b.ProviderID != q.ProviderID {
			continue
		}
		if q.Status != "" && string(b.Status) != q.Status {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, ts time.Time, notes string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	b.StatusHistory = append(b.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: notes})
	return nil
}

func (r *stubBookingRepo) EarningsSummary(_ context.Context, _ string, since time.Time) (float64, int64, error) {
	r.lastSince = since
	return r.earningsTotal, r.earningsJobs, nil
}

type stubServiceRepo struct {
	byID map[string]*domain.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{byID: make(map[string]*domain.Service)}
}

func (r *stubServiceRepo) Insert(_ context.Context, s *domain.Service) error {
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.Service) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.byID {
		if !s.IsActive {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubServiceRepo) ListFeatured(_ context.Context, limit int) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.byID {
		if !s.Featured || !s.IsActive {
			continue
		}
		if len(out) == limit {
			break
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubServiceRepo) ListByCategory(_ context.Context, categoryID string) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.byID {
		if s.CategoryID != categoryID || !s.IsActive {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubServiceRepo) CountByCategory(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, s := range r.byID {
		if s.IsActive {
			counts[s.CategoryID]++
		}
	}
	return counts, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedService(repo *stubServiceRepo) *domain.Service {
	svc := &domain.Service{
		ID:           "svc-1",
		CategoryID:   "cat-1",
		Title:        "Deep Cleaning",
		ProviderID:   "prov-1",
		ProviderName: "Clean Co",
		Price:        80,
		PriceUnit:    "per visit",
		IsActive:     true,
	}
	_ = repo.Insert(context.Background(), svc)
	return svc
}

func seedBooking(repo *stubBookingRepo, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:         "bkg-1",
		CustomerID: "cust-1",
		ProviderID: "prov-1",
		ServiceID:  "svc-1",
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	_ = repo.Create(context.Background(), b)
	return b
}

func newBookingService(bookings *stubBookingRepo, services *stubServiceRepo) *BookingService {
	return NewBookingService(bookings, services, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreateBookingSnapshotsCatalog(t *testing.T) {
	bookings := newStubBookingRepo()
	services := newStubServiceRepo()
	svc := seedService(services)
	s := newBookingService(bookings, services)

	scheduled := time.Now().UTC().Add(48 * time.Hour)
	b, err := s.Create(context.Background(), ports.CreateBookingInput{
		CustomerID:  "cust-1",
		ServiceID:   svc.ID,
		ScheduledAt: scheduled,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if b.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.ServiceTitle != svc.Title || b.ProviderID != svc.ProviderID || b.Price != svc.Price {
		t.Errorf("catalog snapshot not applied: %+v", b)
	}
	if len(b.StatusHistory) != 1 || b.StatusHistory[0].Status != domain.StatusPending {
		t.Errorf("history = %+v, want single pending entry", b.StatusHistory)
	}
	if _, ok := bookings.byID[b.ID]; !ok {
		t.Error("booking not persisted")
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	s := newBookingService(newStubBookingRepo(), newStubServiceRepo())

	_, err := s.Create(context.Background(), ports.CreateBookingInput{
		CustomerID: "cust-1",
		ServiceID:  "nope",
	})
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("err = %v, want ErrServiceNotFound", err)
	}
}

func TestCreateBookingInactiveService(t *testing.T) {
	bookings := newStubBookingRepo()
	services := newStubServiceRepo()
	svc := seedService(services)
	svc.IsActive = false
	_ = services.Insert(context.Background(), svc)
	s := newBookingService(bookings, services)

	_, err := s.Create(context.Background(), ports.CreateBookingInput{
		CustomerID: "cust-1",
		ServiceID:  svc.ID,
	})
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("err = %v, want ErrServiceNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Get / visibility
// ---------------------------------------------------------------------------

func TestGetBookingVisibility(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())

	cases := []struct {
		name    string
		actor   ports.Actor
		wantErr error
	}{
		{"owning customer", ports.Actor{UserID: "cust-1", Role: domain.RoleCustomer}, nil},
		{"assigned provider", ports.Actor{UserID: "prov-1", Role: domain.RoleProvider}, nil},
		{"admin", ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin}, nil},
		{"other customer", ports.Actor{UserID: "cust-2", Role: domain.RoleCustomer}, domain.ErrForbidden},
		{"other provider", ports.Actor{UserID: "prov-2", Role: domain.RoleProvider}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "bkg-1", tc.actor)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Progress
// ---------------------------------------------------------------------------

func TestProgressLifecycleView(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusOnTheWay)
	s := newBookingService(bookings, newStubServiceRepo())
	admin := ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin}

	p, err := s.Progress(context.Background(), "bkg-1", admin)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.StepIndex != 2 || p.Fraction != 0.4 || p.Terminal || p.Cancelled {
		t.Errorf("progress = %+v, want step 2, fraction 0.4", p)
	}
	if len(p.Steps) != 6 {
		t.Errorf("steps = %v, want the 6 lifecycle steps", p.Steps)
	}
}

func TestProgressCompletedIsTerminal(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusCompleted)
	s := newBookingService(bookings, newStubServiceRepo())

	p, err := s.Progress(context.Background(), "bkg-1", ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !p.Terminal || p.Fraction != 1.0 {
		t.Errorf("progress = %+v, want terminal with fraction 1.0", p)
	}
}

func TestProgressCancelledBooking(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusCancelled)
	s := newBookingService(bookings, newStubServiceRepo())

	p, err := s.Progress(context.Background(), "bkg-1", ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !p.Cancelled {
		t.Error("expected cancelled flag")
	}
	if p.Terminal {
		t.Error("cancelled must not report as lifecycle-terminal")
	}
}

// ---------------------------------------------------------------------------
// List scoping
// ---------------------------------------------------------------------------

func TestListScopesToActor(t *testing.T) {
	bookings := newStubBookingRepo()
	_ = bookings.Create(context.Background(), &domain.Booking{ID: "b1", CustomerID: "cust-1", ProviderID: "prov-1", Status: domain.StatusPending})
	_ = bookings.Create(context.Background(), &domain.Booking{ID: "b2", CustomerID: "cust-2", ProviderID: "prov-1", Status: domain.StatusAccepted})
	_ = bookings.Create(context.Background(), &domain.Booking{ID: "b3", CustomerID: "cust-2", ProviderID: "prov-2", Status: domain.StatusPending})
	s := newBookingService(bookings, newStubServiceRepo())

	got, total, err := s.List(context.Background(), ports.Actor{UserID: "cust-2", Role: domain.RoleCustomer}, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("customer list = %d items (total %d), want 2", len(got), total)
	}

	got, _, err = s.List(context.Background(), ports.Actor{UserID: "prov-1", Role: domain.RoleProvider}, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("provider list = %d items, want 2", len(got))
	}

	_, total, err = s.List(context.Background(), ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin}, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("admin total = %d, want 3", total)
	}

	if _, _, err := s.List(context.Background(), ports.Actor{UserID: "x", Role: "ghost"}, ports.ListBookingsFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unknown role err = %v, want ErrForbidden", err)
	}
}

// ---------------------------------------------------------------------------
// AdvanceStatus
// ---------------------------------------------------------------------------

func TestAdvanceStatusHappyPath(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())
	provider := ports.Actor{UserID: "prov-1", Role: domain.RoleProvider}

	b, err := s.AdvanceStatus(context.Background(), "bkg-1", domain.StatusAccepted, provider, "api")
	if err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	if b.Status != domain.StatusAccepted {
		t.Errorf("status = %s, want accepted", b.Status)
	}
	if stored := bookings.byID["bkg-1"]; stored.Status != domain.StatusAccepted {
		t.Errorf("stored status = %s, want accepted", stored.Status)
	}
}

func TestAdvanceStatusRejectsSkip(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())
	provider := ports.Actor{UserID: "prov-1", Role: domain.RoleProvider}

	_, err := s.AdvanceStatus(context.Background(), "bkg-1", domain.StatusArrived, provider, "api")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if stored := bookings.byID["bkg-1"]; stored.Status != domain.StatusPending {
		t.Errorf("stored status changed to %s on rejected transition", stored.Status)
	}
}

func TestAdvanceStatusRejectsBackward(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusArrived)
	s := newBookingService(bookings, newStubServiceRepo())

	_, err := s.AdvanceStatus(context.Background(), "bkg-1", domain.StatusOnTheWay,
		ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin}, "api")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceStatusRejectsCancelledTarget(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())

	// Cancellation has its own path; the lifecycle driver refuses it outright.
	_, err := s.AdvanceStatus(context.Background(), "bkg-1", domain.StatusCancelled,
		ports.Actor{UserID: "adm-1", Role: domain.RoleAdmin}, "api")
	if !errors.Is(err, domain.ErrUnknownStatus) {
		t.Errorf("err = %v, want ErrUnknownStatus", err)
	}
}

func TestAdvanceStatusRBAC(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())

	cases := []struct {
		name  string
		actor ports.Actor
	}{
		{"unassigned provider", ports.Actor{UserID: "prov-2", Role: domain.RoleProvider}},
		{"customer", ports.Actor{UserID: "cust-1", Role: domain.RoleCustomer}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AdvanceStatus(context.Background(), "bkg-1", domain.StatusAccepted, tc.actor, "api")
			if !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("err = %v, want ErrForbidden", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func TestCancelPendingBooking(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())

	b, err := s.Cancel(context.Background(), "bkg-1", ports.Actor{UserID: "cust-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != domain.StatusCancelled {
		t.Errorf("status = %s, want cancelled", b.Status)
	}
}

func TestCancelAcceptedBookingRejected(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusAccepted)
	s := newBookingService(bookings, newStubServiceRepo())

	_, err := s.Cancel(context.Background(), "bkg-1", ports.Actor{UserID: "cust-1", Role: domain.RoleCustomer})
	if !errors.Is(err, domain.ErrBookingNotCancellable) {
		t.Errorf("err = %v, want ErrBookingNotCancellable", err)
	}
}

func TestCancelOtherCustomersBooking(t *testing.T) {
	bookings := newStubBookingRepo()
	seedBooking(bookings, domain.StatusPending)
	s := newBookingService(bookings, newStubServiceRepo())

	_, err := s.Cancel(context.Background(), "bkg-1", ports.Actor{UserID: "cust-2", Role: domain.RoleCustomer})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

// ---------------------------------------------------------------------------
// Earnings
// ---------------------------------------------------------------------------

func TestEarningsPeriodWindows(t *testing.T) {
	bookings := newStubBookingRepo()
	bookings.earningsTotal = 240
	bookings.earningsJobs = 3
	s := newBookingService(bookings, newStubServiceRepo())

	sum, err := s.Earnings(context.Background(), "prov-1", "month")
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if sum.Period != "month" || sum.Total != 240 || sum.Jobs != 3 {
		t.Errorf("summary = %+v", sum)
	}
	if time.Since(bookings.lastSince) < 27*24*time.Hour {
		t.Errorf("month window starts at %v, want roughly one month back", bookings.lastSince)
	}

	// Unknown periods default to a one-week window.
	sum, err = s.Earnings(context.Background(), "prov-1", "fortnight")
	if err != nil {
		t.Fatalf("Earnings: %v", err)
	}
	if sum.Period != "week" {
		t.Errorf("period = %s, want week fallback", sum.Period)
	}
}
