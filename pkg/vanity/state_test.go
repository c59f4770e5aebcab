package vanity

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSharedState_RaiseOnce(t *testing.T) {
	var s SharedState

	if s.Stopped() {
		t.Fatal("new state should not be stopped")
	}
	if !s.Raise() {
		t.Fatal("first Raise should perform the transition")
	}
	if s.Raise() {
		t.Error("second Raise should be a no-op")
	}
	if !s.Stopped() {
		t.Error("state should be stopped")
	}
	if s.Found() {
		t.Error("Raise must not mark a match as found")
	}
}

func TestSharedState_ClaimSingleWinner(t *testing.T) {
	var s SharedState
	var winners atomic.Int32
	var wg sync.WaitGroup

	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Claim() {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := winners.Load(); got != 1 {
		t.Fatalf("expected exactly one winner, got %d", got)
	}
	if !s.Found() || !s.Stopped() {
		t.Error("a won claim should set both found and stop")
	}
}

func TestSharedState_ClaimAfterStop(t *testing.T) {
	var s SharedState
	s.Raise()

	if s.Claim() {
		t.Error("claim after cancellation should lose")
	}
	if s.Found() {
		t.Error("found should stay false")
	}
}

func TestSharedState_IncrementExact(t *testing.T) {
	var s SharedState
	var wg sync.WaitGroup

	const goroutines, perGoroutine = 16, 1000
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := uint64(0)
			for range perGoroutine {
				v := s.Increment()
				if v <= last {
					t.Errorf("counter went backwards: %d after %d", v, last)
					return
				}
				last = v
			}
		}()
	}
	wg.Wait()

	if got := s.Examined(); got != goroutines*perGoroutine {
		t.Fatalf("Examined = %d, want %d", got, goroutines*perGoroutine)
	}
}
