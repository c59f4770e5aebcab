package vanity

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Store is an append-only record store for winning matches.
type Store interface {
	// Prepare makes sure the store exists with its header or schema. It must be idempotent.
	Prepare(ctx context.Context) error

	// Append durably writes one record. It returns only after the write is flushed.
	Append(ctx context.Context, record MatchRecord) error

	// Records returns every record in the store, oldest first.
	Records(ctx context.Context) ([]MatchRecord, error)

	// Close releases the store.
	Close() error
}

type submission struct {
	record MatchRecord
	reply  chan error
}

// Sink hands winning records from workers to a single writer goroutine that owns the Store.
// Only the first successfully persisted record is kept; later submissions are ignored.
type Sink struct {
	store  Store
	logger logrus.FieldLogger

	submissions chan submission
	quit        chan struct{}
	finished    chan struct{}
	closeOnce   sync.Once
}

// NewSink starts the writer goroutine for store.
func NewSink(store Store, logger logrus.FieldLogger) *Sink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Sink{
		store:       store,
		logger:      logger,
		submissions: make(chan submission),
		quit:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Submit hands record to the writer and waits until it is persisted or ignored.
// It is safe for concurrent use. Persistence failures are returned as *PersistError.
func (s *Sink) Submit(ctx context.Context, record MatchRecord) error {
	sub := submission{record: record, reply: make(chan error, 1)}

	select {
	case s.submissions <- sub:
	case <-s.quit:
		return ErrSinkClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// The writer always replies once it has taken a submission.
	return <-sub.reply
}

// Close stops the writer goroutine and waits for it to exit. It does not close the store.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.finished
}

func (s *Sink) run() {
	defer close(s.finished)

	accepted := false
	for {
		select {
		case <-s.quit:
			return
		case sub := <-s.submissions:
			if accepted {
				s.logger.WithField("public_key", sub.record.PublicIdentifier).
					Warn("Ignoring duplicate match, a record was already persisted")
				sub.reply <- nil
				continue
			}

			// Use Background so the write survives cancellation of the search.
			if err := s.store.Append(context.Background(), sub.record); err != nil {
				sub.reply <- &PersistError{Op: "append", Err: err}
				continue
			}
			accepted = true
			s.logger.WithField("public_key", sub.record.PublicIdentifier).Debug("Match persisted")
			sub.reply <- nil
		}
	}
}
