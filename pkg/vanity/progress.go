package vanity

import "time"

// DefaultProgressInterval is how often the reporter samples the examined counter.
const DefaultProgressInterval = 25 * time.Millisecond

// ProgressFunc receives progress samples. It runs on the reporter goroutine, never on a worker.
type ProgressFunc func(Progress)

// reporter polls the shared counter until the stop signal is raised.
type reporter struct {
	state    *SharedState
	interval time.Duration
	started  time.Time
	emit     ProgressFunc
}

// run samples every interval and returns within one interval of the stop signal being raised.
// A final sample is emitted on the way out so the last value shown is the final count.
func (r *reporter) run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for !r.state.Stopped() {
		r.sample()
		<-ticker.C
	}
	r.sample()
}

func (r *reporter) sample() {
	if r.emit == nil {
		return
	}
	r.emit(Progress{
		Examined: r.state.Examined(),
		Elapsed:  time.Since(r.started),
	})
}
