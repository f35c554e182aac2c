package ds

import (
	"errors"
	"testing"
	"time"
)

func TestExponentialBackoff_SuccessResetsState(t *testing.T) {
	b := NewExponentialBackoff(5 * time.Second)
	var slept []time.Duration
	b.sleep = func(d time.Duration) { slept = append(slept, d) }

	_, result := Run(b, func() (int, error) { return 1, errors.New("boom") })
	if result == nil || !result.FirstFailure {
		t.Fatalf("expected first failure to be flagged")
	}

	_, result = Run(b, func() (int, error) { return 1, nil })
	if result != nil {
		t.Fatalf("expected nil result on success, got %+v", result)
	}
	if b.attempt != 0 || b.havePending {
		t.Fatalf("expected backoff state reset after success")
	}
}

func TestExponentialBackoff_FirstFailureOnlyOnce(t *testing.T) {
	b := NewExponentialBackoff(5 * time.Second)
	b.sleep = func(time.Duration) {}

	_, r1 := Run(b, func() (int, error) { return 0, errors.New("boom") })
	_, r2 := Run(b, func() (int, error) { return 0, errors.New("boom") })

	if !r1.FirstFailure {
		t.Errorf("expected first call to report FirstFailure=true")
	}
	if r2.FirstFailure {
		t.Errorf("expected second call to report FirstFailure=false")
	}
}

func TestExponentialBackoff_CapsAtMaxTimeout(t *testing.T) {
	b := NewExponentialBackoff(100 * time.Millisecond)
	b.sleep = func(time.Duration) {}

	for i := 0; i < 5; i++ {
		Run(b, func() (int, error) { return 0, errors.New("boom") })
	}

	if !b.useMax {
		t.Fatalf("expected backoff to have saturated to the ceiling")
	}
	if b.pending != 100*time.Millisecond {
		t.Errorf("pending = %v; want %v", b.pending, 100*time.Millisecond)
	}
}

func TestExponentialBackoff_SleepsPendingBeforeNextAttempt(t *testing.T) {
	b := NewExponentialBackoff(5 * time.Second)
	var slept []time.Duration
	b.sleep = func(d time.Duration) { slept = append(slept, d) }

	Run(b, func() (int, error) { return 0, errors.New("boom") })
	Run(b, func() (int, error) { return 0, errors.New("boom") })

	if len(slept) != 1 {
		t.Fatalf("expected exactly one sleep (before the second attempt), got %d", len(slept))
	}
	if slept[0] != 1*time.Millisecond {
		t.Errorf("slept[0] = %v; want %v", slept[0], 1*time.Millisecond)
	}
}
