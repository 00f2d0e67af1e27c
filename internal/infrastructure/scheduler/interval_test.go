package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartFiresImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	defer s.Stop(context.Background())

	fired := make(chan struct{})
	if err := s.Start(context.Background(), func(time.Time) { close(fired) }); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("first run should fire without waiting for the interval")
	}
}

func TestStopHaltsTicking(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(10 * time.Millisecond)

	var runs atomic.Int64
	if err := s.Start(context.Background(), func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("start: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// Allow an in-flight tick to drain before sampling.
	time.Sleep(20 * time.Millisecond)
	settled := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if runs.Load() != settled {
		t.Fatal("job kept firing after Stop")
	}
}

func TestStopDuringTickingIsSafe(t *testing.T) {
	t.Parallel()

	// Stop races against a goroutine that is actively selecting on the stop
	// channel; the scheduler must hand the goroutine its own channel so a
	// concurrent Stop cannot nil it out from under the select.
	for i := 0; i < 20; i++ {
		s := NewIntervalScheduler(time.Millisecond)
		if err := s.Start(context.Background(), func(time.Time) {}); err != nil {
			t.Fatalf("start: %v", err)
		}
		time.Sleep(time.Millisecond)
		if err := s.Stop(context.Background()); err != nil {
			t.Fatalf("stop: %v", err)
		}
		if err := s.Stop(context.Background()); err != nil {
			t.Fatalf("second stop: %v", err)
		}
	}
}

func TestStartWithNilJobIsNoop(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	if err := s.Start(context.Background(), nil); err != nil {
		t.Fatalf("start with nil job: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
