package vanity

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/vanity-keygen/internal/errors"
)

// State is the lifecycle state of a Coordinator.
type State int32

const (
	StateIdle    State = iota // Config loaded, store not yet prepared
	StateRunning              // Shared state created, workers and reporter spawned
	StateDone                 // Every worker and the reporter have returned
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Coordinator runs one search: it prepares the store, spawns the workers, the reporter and
// the result sink, joins them and reports the outcome. A Coordinator runs at most once.
type Coordinator struct {
	config    SearchConfig
	generator KeyGenerator
	store     Store
	logger    logrus.FieldLogger
	note      string
	progress  ProgressFunc
	interval  time.Duration

	started atomic.Bool
	state   atomic.Int32
	shared  atomic.Pointer[SharedState]
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Examined returns the live examined count, or zero before the search is running.
func (c *Coordinator) Examined() uint64 {
	if shared := c.shared.Load(); shared != nil {
		return shared.Examined()
	}
	return 0
}

// Run searches until a worker finds a match, every worker has ended abnormally, or ctx is
// cancelled. It blocks until all goroutines it started have returned.
//
// Errors:
//   - *ConfigError: invalid configuration, nothing was started.
//   - *PersistError: the store could not be prepared, or the match could not be written.
//     In the latter case the returned Result still carries the match.
//   - ErrNoLiveWorkers: every worker ended abnormally; Result.Faults lists why.
//
// Cancellation is not an error: the Result has Cancelled set.
func (c *Coordinator) Run(ctx context.Context) (*Result, error) {
	if !c.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}
	defer c.state.Store(int32(StateDone))

	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.store.Prepare(ctx); err != nil {
		return nil, errors.WithStackTrace(&PersistError{Op: "prepare", Err: err})
	}

	shared := &SharedState{}
	c.shared.Store(shared)

	logger := c.logger.WithFields(logrus.Fields{
		"pattern":   c.config.Pattern,
		"workers":   c.config.Workers,
		"generator": c.generator.Name(),
	})

	s := &search{
		state:     shared,
		matcher:   NewMatcher(c.config.Pattern, c.config.CaseSensitive),
		generator: c.generator,
		sink:      NewSink(c.store, logger),
		note:      c.note,
		logger:    logger,
	}
	s.live.Store(int64(c.config.Workers))

	startedAt := time.Now()
	c.state.Store(int32(StateRunning))
	logger.WithField("case_sensitive", c.config.CaseSensitive).Info("Search started")

	// Cancellation raises the same stop signal a match does, so workers read a single atomic.
	var cancelled atomic.Bool
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			if shared.Raise() {
				cancelled.Store(true)
			}
		case <-watchDone:
		}
	}()

	rep := &reporter{
		state:    shared,
		interval: c.interval,
		started:  startedAt,
		emit:     c.progress,
	}
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		rep.run()
	}()

	var workers errgroup.Group
	for i := 0; i < c.config.Workers; i++ {
		id := i + 1
		workers.Go(func() error {
			s.work(id)
			return nil
		})
	}
	_ = workers.Wait()
	<-reporterDone
	close(watchDone)
	s.sink.Close()

	result := &Result{
		Found:     shared.Found(),
		Examined:  shared.Examined(),
		Elapsed:   time.Since(startedAt),
		Faults:    s.faults,
		Cancelled: cancelled.Load(),
	}
	if result.Found {
		result.Record = s.record
		result.Candidate = s.winner
		result.WorkerID = s.winnerID
	}

	logger.WithFields(logrus.Fields{
		"found":     result.Found,
		"examined":  result.Examined,
		"elapsed":   result.Elapsed,
		"faults":    len(result.Faults),
		"cancelled": result.Cancelled,
	}).Info("Search finished")

	switch {
	case s.persistErr != nil:
		return result, errors.WithStackTrace(s.persistErr)
	case !result.Found && !result.Cancelled:
		faults := (&errors.MultiError{}).Append(s.faults...)
		return result, errors.WithStackTrace(fmt.Errorf("%w: %w", ErrNoLiveWorkers, faults))
	}
	return result, nil
}

func (c *Coordinator) validate() error {
	if c.generator == nil {
		return ErrNoGenerator
	}
	if c.store == nil {
		return ErrNoStore
	}
	if err := c.config.Validate(); err != nil {
		return err
	}
	if a, ok := c.generator.(Alphabeter); ok {
		return CheckAlphabet(c.config.Pattern, a.Alphabet(), c.config.CaseSensitive)
	}
	return nil
}
