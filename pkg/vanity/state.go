package vanity

import "sync/atomic"

// SharedState is the state every worker and the reporter of one search touch.
// All fields are atomic so the hot loop never takes a lock.
type SharedState struct {
	stop     atomic.Bool
	found    atomic.Bool
	examined atomic.Uint64
}

// Stopped reports whether the stop signal has been raised.
func (s *SharedState) Stopped() bool {
	return s.stop.Load()
}

// Raise sets the stop signal. It returns true only for the call that performed the
// false -> true transition; later calls are no-ops.
func (s *SharedState) Raise() bool {
	return s.stop.CompareAndSwap(false, true)
}

// Claim raises the stop signal on behalf of a match. Only the first claimant wins, and a
// claim loses if the search was already stopped for another reason.
func (s *SharedState) Claim() bool {
	if !s.Raise() {
		return false
	}
	s.found.Store(true)
	return true
}

// Found reports whether a worker won the claim.
func (s *SharedState) Found() bool {
	return s.found.Load()
}

// Increment advances the examined counter and returns its new value.
func (s *SharedState) Increment() uint64 {
	return s.examined.Add(1)
}

// Examined returns the number of candidates examined without a match.
func (s *SharedState) Examined() uint64 {
	return s.examined.Load()
}
