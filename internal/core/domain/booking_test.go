package domain

import (
	"errors"
	"testing"
)

func TestStepIndexOrdering(t *testing.T) {
	want := []BookingStatus{
		StatusPending, StatusAccepted, StatusOnTheWay,
		StatusArrived, StatusInProgress, StatusCompleted,
	}
	for i, s := range want {
		got, err := StepIndex(s)
		if err != nil {
			t.Fatalf("StepIndex(%s): %v", s, err)
		}
		if got != i {
			t.Errorf("StepIndex(%s) = %d, want %d", s, got, i)
		}
	}
}

func TestStepIndexRejectsCancelled(t *testing.T) {
	if _, err := StepIndex(StatusCancelled); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("StepIndex(cancelled) err = %v, want ErrUnknownStatus", err)
	}
	if _, err := StepIndex("bogus"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("StepIndex(bogus) err = %v, want ErrUnknownStatus", err)
	}
}

func TestProgressFraction(t *testing.T) {
	cases := []struct {
		status BookingStatus
		want   float64
	}{
		{StatusPending, 0.0},
		{StatusAccepted, 0.2},
		{StatusOnTheWay, 0.4},
		{StatusArrived, 0.6},
		{StatusInProgress, 0.8},
		{StatusCompleted, 1.0},
	}
	for _, tc := range cases {
		got, err := ProgressFraction(tc.status)
		if err != nil {
			t.Fatalf("ProgressFraction(%s): %v", tc.status, err)
		}
		if got != tc.want {
			t.Errorf("ProgressFraction(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestCanTransitionToSingleStepOnly(t *testing.T) {
	// Every adjacent pair is allowed.
	for i := 0; i < len(LifecycleSteps)-1; i++ {
		if !LifecycleSteps[i].CanTransitionTo(LifecycleSteps[i+1]) {
			t.Errorf("%s -> %s should be allowed", LifecycleSteps[i], LifecycleSteps[i+1])
		}
	}

	// Skipping, staying put, and going back are all rejected.
	rejected := []struct{ from, to BookingStatus }{
		{StatusPending, StatusOnTheWay},
		{StatusPending, StatusCompleted},
		{StatusAccepted, StatusPending},
		{StatusCompleted, StatusPending},
		{StatusInProgress, StatusInProgress},
		{StatusAccepted, StatusCancelled},
		{StatusCancelled, StatusPending},
	}
	for _, tc := range rejected {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestCanTransitionToCancelledFromPendingOnly(t *testing.T) {
	if !StatusPending.CanTransitionTo(StatusCancelled) {
		t.Error("pending -> cancelled should be allowed")
	}
	for _, s := range LifecycleSteps[1:] {
		if s.CanTransitionTo(StatusCancelled) {
			t.Errorf("%s -> cancelled should be rejected", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusCompleted) {
		t.Error("completed should be terminal")
	}
	for _, s := range LifecycleSteps[:len(LifecycleSteps)-1] {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
